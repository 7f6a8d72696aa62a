package vector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func TestRetryWithTimeout(t *testing.T) {
	cfg := &Config{Timeout: time.Second, MaxRetries: 2, RetryDelay: time.Millisecond}
	r := NewRetryService(cfg, nopLogger{})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := r.RetryWithTimeout(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("wraps last error", func(t *testing.T) {
		cause := errors.New("index unavailable")
		calls := 0
		err := r.RetryWithTimeout(context.Background(), func(ctx context.Context) error {
			calls++
			return cause
		})
		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, cause)

		var vErr *VectorError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "retry", vErr.Type)
	})

	t.Run("stops on cancelled parent", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		err := r.RetryWithTimeout(ctx, func(ctx context.Context) error {
			cancel()
			return errors.New("cancelled mid-call")
		})
		var vErr *VectorError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "timeout", vErr.Type)
	})
	t.Run("does not repeat rejected requests", func(t *testing.T) {
		rejections := []error{
			newDimensionError("upsert", 768, 3),
			NewConfigError("namespace missing"),
			status.Error(codes.InvalidArgument, "vector dimension 3 does not match the dimension of the index 768"),
			status.Error(codes.Unauthenticated, "invalid api key"),
		}
		for _, rejection := range rejections {
			calls := 0
			err := r.RetryWithTimeout(context.Background(), func(ctx context.Context) error {
				calls++
				return rejection
			})
			assert.Equal(t, 1, calls, rejection.Error())
			assert.ErrorIs(t, err, rejection)

			var vErr *VectorError
			require.ErrorAs(t, err, &vErr)
			assert.NotEqual(t, "retry", vErr.Type)
		}
	})

	t.Run("repeats unavailable index", func(t *testing.T) {
		calls := 0
		err := r.RetryWithTimeout(context.Background(), func(ctx context.Context) error {
			calls++
			return status.Error(codes.Unavailable, "connection reset")
		})
		assert.Equal(t, 3, calls)
		var vErr *VectorError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "retry", vErr.Type)
	})
}
