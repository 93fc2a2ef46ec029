package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const window = time.Minute

// Limiter counts requests per client IP in fixed one minute windows. A
// window opens on the first request of a client and closes a minute later.
type Limiter struct {
	limit      int
	sweepEvery time.Duration
	idleTTL    time.Duration
	now        func() time.Time

	mu      sync.Mutex
	clients map[string]*bucket

	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	opened   time.Time
	lastSeen time.Time
	count    int
}

// Config sets the per client budget and how idle clients are forgotten.
// Zero values fall back to DefaultConfig.
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
	IdleTimeout       time.Duration
}

// DefaultConfig allows two requests a second on average
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
		IdleTimeout:       10 * time.Minute,
	}
}

// NewLimiter starts a limiter with a background sweep of idle clients.
// Stop ends the sweep.
func NewLimiter(cfg Config) *Limiter {
	def := DefaultConfig()
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = def.RequestsPerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}

	l := &Limiter{
		limit:      cfg.RequestsPerMinute,
		sweepEvery: cfg.CleanupInterval,
		idleTTL:    cfg.IdleTimeout,
		now:        time.Now,
		clients:    make(map[string]*bucket),
		done:       make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow records a request from ip and reports whether it is within budget
func (l *Limiter) Allow(ip string) bool {
	ok, _ := l.take(ip)
	return ok
}

// take records a request. When over budget it also returns how long until
// the client's window closes.
func (l *Limiter) take(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b := l.clients[ip]
	if b == nil || now.Sub(b.opened) >= window {
		l.clients[ip] = &bucket{opened: now, lastSeen: now, count: 1}
		return true, 0
	}

	b.lastSeen = now
	b.count++
	if b.count <= l.limit {
		return true, 0
	}
	return false, b.opened.Add(window).Sub(now)
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.forgetIdle()
		}
	}
}

func (l *Limiter) forgetIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	for ip, b := range l.clients {
		if b.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// ActiveClients is the number of clients with a live or recent window
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Stop ends the sweep goroutine. Later calls do nothing.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// retryAfterSeconds rounds up so clients never retry inside the window
func retryAfterSeconds(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// Middleware answers over budget requests with 429 and a Retry-After of the
// seconds left in the client's window. onLimit writes the body; nil gives a
// plain text reply.
func (l *Limiter) Middleware(clientIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.take(clientIP(r))
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			if onLimit == nil {
				http.Error(w, "too many requests, slow down", http.StatusTooManyRequests)
				return
			}
			onLimit(w, r)
		})
	}
}
