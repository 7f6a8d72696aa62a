// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // Time window for rate limiting
	MaxAttempts   int           // Maximum attempts per window
	CleanupPeriod time.Duration // How often to clean up old entries
	BanDuration   time.Duration // How long to block after exceeding limit
}

// APIConfig limits public endpoints to perMinute requests per client.
// Going over blocks the client until the next minute.
func APIConfig(perMinute int) *Config {
	if perMinute <= 0 {
		perMinute = 30
	}
	return &Config{
		WindowSize:    time.Minute,
		MaxAttempts:   perMinute,
		CleanupPeriod: 5 * time.Minute,
		BanDuration:   time.Minute,
	}
}

// StrictAuthConfig returns stricter limits for the admin login
func StrictAuthConfig() *Config {
	return &Config{
		WindowSize:    10 * time.Minute,
		MaxAttempts:   3,
		CleanupPeriod: 20 * time.Minute,
		BanDuration:   60 * time.Minute,
	}
}

// attemptRecord tracks attempts for an IP/identifier
type attemptRecord struct {
	Count     int
	FirstSeen time.Time
	LastSeen  time.Time
	BannedAt  *time.Time
}

// RateLimitInfo contains information about rate limit status
type RateLimitInfo struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

// MemoryRateLimiter implements in-memory rate limiting
type MemoryRateLimiter struct {
	config   *Config
	attempts map[string]*attemptRecord
	mu       sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	now      func() time.Time
}

// NewMemoryRateLimiter creates a limiter and starts its cleanup goroutine;
// call Close to stop it.
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	limiter := &MemoryRateLimiter{
		config:   config,
		attempts: make(map[string]*attemptRecord),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}

	go limiter.cleanupLoop()

	return limiter
}

// Allow checks if a request should be allowed
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	record, exists := rl.attempts[identifier]

	if !exists {
		rl.attempts[identifier] = &attemptRecord{
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
		return true, rl.allowed(rl.config.MaxAttempts-1, now.Add(rl.config.WindowSize))
	}

	if record.BannedAt != nil && now.Sub(*record.BannedAt) < rl.config.BanDuration {
		remainingBan := rl.config.BanDuration - now.Sub(*record.BannedAt)
		return false, &RateLimitInfo{
			Limit:      rl.config.MaxAttempts,
			ResetTime:  record.BannedAt.Add(rl.config.BanDuration),
			RetryAfter: remainingBan,
			Banned:     true,
		}
	}

	// Window (or an expired ban) has lapsed: start over.
	if record.BannedAt != nil || now.Sub(record.FirstSeen) > rl.config.WindowSize {
		record.Count = 1
		record.FirstSeen = now
		record.LastSeen = now
		record.BannedAt = nil
		return true, rl.allowed(rl.config.MaxAttempts-1, now.Add(rl.config.WindowSize))
	}

	record.Count++
	record.LastSeen = now

	if record.Count > rl.config.MaxAttempts {
		banTime := now
		record.BannedAt = &banTime
		return false, &RateLimitInfo{
			Limit:      rl.config.MaxAttempts,
			ResetTime:  now.Add(rl.config.BanDuration),
			RetryAfter: rl.config.BanDuration,
			Banned:     true,
		}
	}

	return true, rl.allowed(rl.config.MaxAttempts-record.Count, record.FirstSeen.Add(rl.config.WindowSize))
}

func (rl *MemoryRateLimiter) allowed(remaining int, reset time.Time) *RateLimitInfo {
	return &RateLimitInfo{
		Allowed:   true,
		Limit:     rl.config.MaxAttempts,
		Remaining: remaining,
		ResetTime: reset,
	}
}

// RecordSuccess clears the attempts for identifier.
func (rl *MemoryRateLimiter) RecordSuccess(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.attempts, identifier)
}

// Tracked returns how many identifiers currently have a record.
func (rl *MemoryRateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.attempts)
}

// cleanupLoop periodically removes old records
func (rl *MemoryRateLimiter) cleanupLoop() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup removes expired records
func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for identifier, record := range rl.attempts {
		windowExpired := now.Sub(record.FirstSeen) > rl.config.WindowSize
		banExpired := record.BannedAt != nil && now.Sub(*record.BannedAt) > rl.config.BanDuration

		if (windowExpired && record.BannedAt == nil) || banExpired {
			delete(rl.attempts, identifier)
		}
	}
}

// Close stops the cleanup goroutine and waits for it to exit. Safe to call twice.
func (rl *MemoryRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
	<-rl.done
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// parseFirstIP extracts the first IP from a comma-separated list
func parseFirstIP(forwarded string) string {
	first, _, _ := strings.Cut(forwarded, ",")
	return strings.TrimSpace(first)
}
