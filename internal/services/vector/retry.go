package vector

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RetryService repeats index calls that fail for transient reasons. Requests
// the index rejects outright are returned after the first attempt.
type RetryService struct {
	config *Config
	logger Logger
}

func NewRetryService(config *Config, logger Logger) *RetryService {
	return &RetryService{
		config: config,
		logger: logger,
	}
}

// RetryWithTimeout runs call until it succeeds, bounded by the configured
// timeout and retry count. The parent context's cancellation is honoured.
func (r *RetryService) RetryWithTimeout(parent context.Context, call func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, r.config.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewTimeoutError("index call timed out between attempts", ctx.Err())
			case <-time.After(r.config.RetryDelay):
			}
		}

		err := call(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("index call recovered", "attempts", attempt+1)
			}
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return NewTimeoutError("index call timed out", ctx.Err())
		}
		if !retryable(err) {
			r.logger.Debug("index rejected request, not retrying", "error", err)
			return permanentError(err)
		}
		if attempt < r.config.MaxRetries {
			r.logger.Warn("index call failed, retrying", "attempt", attempt+1, "error", err)
		}
	}

	r.logger.Error("index call failed after all retries", "attempts", r.config.MaxRetries+1, "error", lastErr)
	return NewRetryError("index call failed after all retries", lastErr)
}

// retryable reports whether another attempt could succeed. Local validation
// and config errors never change between attempts, nor do gRPC statuses that
// describe the request itself.
func retryable(err error) bool {
	var vErr *VectorError
	if errors.As(err, &vErr) {
		return vErr.Type != "validation" && vErr.Type != "config"
	}
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.InvalidArgument, codes.NotFound, codes.AlreadyExists,
			codes.PermissionDenied, codes.Unauthenticated, codes.FailedPrecondition,
			codes.OutOfRange, codes.Unimplemented:
			return false
		}
	}
	return true
}

func permanentError(err error) error {
	var vErr *VectorError
	if errors.As(err, &vErr) {
		return err
	}
	return &VectorError{Type: "validation", Operation: "retry", Message: "index rejected request", Err: err}
}
