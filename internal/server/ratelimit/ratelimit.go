// Package ratelimit provides per-client rate limiting using a token bucket algorithm.
package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Rule limits requests to one route for each client
type Rule struct {
	Method string        // HTTP method
	Path   string        // exact path, or a prefix when it ends with "/"
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when zero
}

// matches reports whether the rule applies to a request
func (r Rule) matches(method, path string) bool {
	if r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") {
		return strings.HasPrefix(path, r.Path)
	}
	return r.Path == path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	Rules           []Rule
}

// DefaultRules limits the routes that do real work per request. Everything else is
// left unlimited.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Path: "/image", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "GET", Path: "/resume.pdf", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "PUT", Path: "/api/resume", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
// RATE_LIMIT_ENABLED (default true) turns limiting off entirely.
func LoadConfig() *Config {
	enabled := true
	if value := os.Getenv("RATE_LIMIT_ENABLED"); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			enabled = b
		}
	}

	cleanup := 5 * time.Minute
	if value := os.Getenv("RATE_LIMIT_CLEANUP_INTERVAL"); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			cleanup = d
		}
	}

	return &Config{
		Enabled:         enabled,
		CleanupInterval: cleanup,
		Rules:           DefaultRules(),
	}
}

// bucket is a token bucket refilled at a steady rate
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take consumes a token if one is available. It returns the tokens left and, when
// denied, how long until the next token arrives.
func (b *bucket) take(now time.Time) (bool, int, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.refillRate)
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	wait := time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	return false, 0, wait
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter manages one token bucket per client and rule.
type Limiter struct {
	config *Config

	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a rate limiter. A nil config limits nothing.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}

	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		stop:       make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow checks if a request from clientID is allowed.
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	var rule *Rule
	for i := range l.config.Rules {
		if l.config.Rules[i].matches(method, path) {
			rule = &l.config.Rules[i]
			break
		}
	}
	if rule == nil || rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	key := clientID + ":" + rule.Method + ":" + rule.Path

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds())
		l.buckets[key] = b
	}
	l.lastAccess[key] = now
	l.mu.Unlock()

	allowed, remaining, retry := b.take(now)
	return allowed, Info{
		Allowed:    allowed,
		Limit:      rule.Limit,
		Remaining:  remaining,
		RetryAfter: retry,
	}
}

// cleanup drops buckets that have been idle for over an hour
func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) sweep(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop stops the cleanup goroutine. Stop is idempotent.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
