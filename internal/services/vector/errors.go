package vector

import "fmt"

// VectorError is returned by every Store implementation.
type VectorError struct {
	Type      string
	Operation string
	Message   string
	Err       error
}

func (e *VectorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vector %s error in %s: %s: %v", e.Type, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("vector %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *VectorError) Unwrap() error {
	return e.Err
}

func NewOperationError(operation, message string, err error) *VectorError {
	return &VectorError{Type: "operation", Operation: operation, Message: message, Err: err}
}

func NewConfigError(message string) *VectorError {
	return &VectorError{Type: "config", Operation: "config", Message: message}
}

func NewTimeoutError(message string, err error) *VectorError {
	return &VectorError{Type: "timeout", Operation: "retry", Message: message, Err: err}
}

func NewRetryError(message string, err error) *VectorError {
	return &VectorError{Type: "retry", Operation: "retry", Message: message, Err: err}
}

func newDimensionError(operation string, want, got int) *VectorError {
	return &VectorError{
		Type:      "validation",
		Operation: operation,
		Message:   fmt.Sprintf("dimension mismatch: index has %d, got %d", want, got),
	}
}
