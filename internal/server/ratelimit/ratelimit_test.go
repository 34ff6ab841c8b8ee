package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestBucket_Take(t *testing.T) {
	b := newBucket(3, 1.0)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if ok, _, _ := b.take(now); !ok {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	ok, remaining, retry := b.take(now)
	if ok {
		t.Error("Expected 4th request to be denied")
	}
	if remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
	if retry <= 0 || retry > time.Second {
		t.Errorf("Expected retry within one second, got %v", retry)
	}
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(2, 1.0)
	now := time.Now()
	b.take(now)
	b.take(now)

	if ok, _, _ := b.take(now.Add(1100 * time.Millisecond)); !ok {
		t.Error("Expected request to be allowed after refill")
	}
	if ok, _, _ := b.take(now.Add(1100 * time.Millisecond)); ok {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestRule_Matches(t *testing.T) {
	exact := Rule{Method: "POST", Path: "/image"}
	prefix := Rule{Method: "POST", Path: "/lists/"}

	if !exact.matches("POST", "/image") {
		t.Error("Expected exact match")
	}
	if exact.matches("DELETE", "/image") {
		t.Error("Expected method mismatch")
	}
	if exact.matches("POST", "/image/x") {
		t.Error("Expected no prefix match on exact rule")
	}
	if !prefix.matches("POST", "/lists/links") {
		t.Error("Expected prefix match")
	}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Rules:   []Rule{{Method: "POST", Path: "/image", Limit: 2, Window: time.Minute}},
	})
	defer l.Stop()

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow("1.2.3.4", "POST", "/image"); !ok {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}

	ok, info := l.Allow("1.2.3.4", "POST", "/image")
	if ok {
		t.Error("Expected 3rd request to be denied")
	}
	if info.Limit != 2 || info.RetryAfter <= 0 {
		t.Errorf("Unexpected info: %+v", info)
	}

	// other clients and unlisted routes are unaffected
	if ok, _ := l.Allow("5.6.7.8", "POST", "/image"); !ok {
		t.Error("Expected other client to be allowed")
	}
	if ok, _ := l.Allow("1.2.3.4", "GET", "/health"); !ok {
		t.Error("Expected unlimited route to be allowed")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: false,
		Rules:   []Rule{{Method: "POST", Path: "/image", Limit: 1, Window: time.Minute}},
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		if ok, _ := l.Allow("c", "POST", "/image"); !ok {
			t.Fatal("Expected disabled limiter to allow everything")
		}
	}
}

func TestLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	if ok, _ := l.Allow("c", "GET", "/resume.pdf"); !ok {
		t.Error("Expected nil config to allow")
	}
}

func TestLimiter_Sweep(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Rules: DefaultRules()})
	defer l.Stop()

	l.Allow("c", "POST", "/image")
	l.sweep(time.Now().Add(time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.buckets) != 0 {
		t.Errorf("Expected idle buckets to be removed, got %d", len(l.buckets))
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Rules:   []Rule{{Method: "GET", Path: "/resume.pdf", Limit: 50, Window: time.Hour}},
	})
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "GET", "/resume.pdf"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("Expected 50 allowed requests, got %d", allowed)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_CLEANUP_INTERVAL", "1m")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
	if cfg.CleanupInterval != time.Minute {
		t.Errorf("Expected 1m cleanup interval, got %v", cfg.CleanupInterval)
	}
	if len(cfg.Rules) == 0 {
		t.Error("Expected default rules")
	}
}
