// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	AdminSubjectKey contextKey = "admin_subject"
)

// Logger is the logging interface middlewares write to.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
