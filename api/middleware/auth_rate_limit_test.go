package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeRateLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeRateLimiter() *fakeRateLimiter {
	return &fakeRateLimiter{counts: make(map[string]int64)}
}

func (f *fakeRateLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func loginRequest(email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"`+email+`","password":"pw"}`))
	req.RemoteAddr = "203.0.113.9:4455"
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newFakeRateLimiter(), nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("a@example.com"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthRateLimitBlocksEmailOverLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	store := newFakeRateLimiter()
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, loginRequest("a@example.com"))
		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequest("a@example.com"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestAuthRateLimitCountsEmailsSeparately(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	store := newFakeRateLimiter()
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, loginRequest("a@example.com"))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", first.Code)
	}

	other := httptest.NewRecorder()
	handler.ServeHTTP(other, loginRequest("b@example.com"))
	if other.Code != http.StatusOK {
		t.Fatalf("different email should not be throttled, got %d", other.Code)
	}
}

func TestAuthRateLimitBlocksIPOverLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 1, 0)
	store := newFakeRateLimiter()
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, loginRequest("a@example.com"))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, loginRequest("b@example.com"))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same ip got %d", second.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := loginRequest("a@example.com")
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := clientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected forwarded ip got %q", got)
	}
}
