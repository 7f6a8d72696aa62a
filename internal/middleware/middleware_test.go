package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zelig/zelig-backend/internal/auth"
	"github.com/zelig/zelig-backend/internal/ratelimit"
)

type recordingLogger struct {
	infos  []string
	errors []string
	warns  []string
}

func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.errors = append(l.errors, msg) }
func (l *recordingLogger) Debug(string, ...interface{})       {}
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.warns = append(l.warns, msg) }

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestLoggingMiddleware_LogsServerErrorsAsErrors(t *testing.T) {
	logger := &recordingLogger{}
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	LoggingMiddleware(logger)(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	LoggingMiddleware(logger)(failing).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, logger.infos, 1)
	assert.Len(t, logger.errors, 1)
}

func TestRecoverPanic(t *testing.T) {
	logger := &recordingLogger{}
	h := RecoverPanic(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
	assert.Equal(t, []string{"panic recovered"}, logger.errors)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		method      string
		wantOrigin  string
		wantStatus  int
		wantHandled bool
	}{
		{name: "wildcard echoes origin", allowed: []string{"*"}, origin: "https://zelig.ma", method: http.MethodPost, wantOrigin: "https://zelig.ma", wantStatus: http.StatusOK, wantHandled: true},
		{name: "listed origin", allowed: []string{"https://zelig.ma/"}, origin: "https://zelig.ma", method: http.MethodGet, wantOrigin: "https://zelig.ma", wantStatus: http.StatusOK, wantHandled: true},
		{name: "unlisted origin passes without headers", allowed: []string{"https://zelig.ma"}, origin: "https://evil.example", method: http.MethodGet, wantStatus: http.StatusOK, wantHandled: true},
		{name: "preflight short-circuits", allowed: []string{"*"}, origin: "https://zelig.ma", method: http.MethodOptions, wantOrigin: "https://zelig.ma", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled := false
			h := CORS(tt.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/translate", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantHandled, handled)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.APIConfig(2))
	t.Cleanup(limiter.Close)

	h := RateLimitMiddleware(limiter, "api", &recordingLogger{})(okHandler)
	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	second := do()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "2", second.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := do()
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(third.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	assert.Contains(t, body, "retryAfter")
}

func TestAuthSuccessMiddleware_ResetsOnSuccess(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(ratelimit.StrictAuthConfig())
	t.Cleanup(limiter.Close)
	logger := &recordingLogger{}

	status := http.StatusUnauthorized
	login := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	h := RateLimitMiddleware(limiter, "login", logger)(AuthSuccessMiddleware(limiter, "login", logger)(login))

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.RemoteAddr = "198.51.100.2:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do())
	assert.Equal(t, http.StatusUnauthorized, do())
	status = http.StatusOK
	assert.Equal(t, http.StatusOK, do())

	// the successful login cleared the budget
	status = http.StatusUnauthorized
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, do())
	}
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRequireAdmin(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.GenerateAdminToken("admin", secret, time.Hour)
	require.NoError(t, err)
	other, err := auth.GenerateAdminToken("admin", []byte("other"), time.Hour)
	require.NoError(t, err)

	var subject string
	h := RequireAdmin(secret, &recordingLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = r.Context().Value(AdminSubjectKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "foreign signature", header: "Bearer " + other, want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + token, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/places", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, "admin", subject)
}
