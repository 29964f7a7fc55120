// Package throttle keys and counts failed login attempts per portal,
// guard, email and client IP.
package throttle

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
)

const (
	DefaultMaxAttempts = 5
	DefaultDecay       = 60 * time.Second
)

// Key builds the login throttle key for a request.
func Key(r *http.Request, portal domain.Portal, email string) string {
	return KeyFor(portal, email, httpx.ClientIP(r))
}

// KeyFor builds the login throttle key from an already resolved client IP.
func KeyFor(portal domain.Portal, email, ip string) string {
	return build("login", portal, email, ip)
}

// PortalKey is the portal-login variant of Key.
func PortalKey(r *http.Request, portal domain.Portal, email string) string {
	return build("portal-login", portal, email, httpx.ClientIP(r))
}

func build(prefix string, portal domain.Portal, email, ip string) string {
	return strings.Join([]string{
		prefix,
		string(portal),
		domain.GuardFor(portal),
		strings.ToLower(strings.TrimSpace(email)),
		ip,
	}, "|")
}

// Limiter counts attempts per key over a rolling window. Each key keeps
// the times of its recent hits; a key is locked while maxAttempts of them
// fall inside the last decay.
type Limiter struct {
	maxAttempts int
	decay       time.Duration
	now         func() time.Time

	mu          sync.Mutex
	hits        map[string][]time.Time
	lastCleanup time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func NewLimiter(maxAttempts int, decay time.Duration, opts ...Option) *Limiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if decay <= 0 {
		decay = DefaultDecay
	}
	l := &Limiter{
		maxAttempts: maxAttempts,
		decay:       decay,
		now:         time.Now,
		hits:        make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastCleanup = l.now()
	return l
}

// live drops expired hits for key and returns the rest. Callers hold l.mu.
func (l *Limiter) live(key string, now time.Time) []time.Time {
	hits := l.hits[key]
	cutoff := now.Add(-l.decay)
	n := 0
	for n < len(hits) && !hits[n].After(cutoff) {
		n++
	}
	if n == len(hits) {
		delete(l.hits, key)
		return nil
	}
	if n > 0 {
		hits = hits[n:]
		l.hits[key] = hits
	}
	return hits
}

// cleanup drops keys with no live hits, at most once per decay. Callers hold l.mu.
func (l *Limiter) cleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.decay {
		return
	}
	l.lastCleanup = now
	for key := range l.hits {
		l.live(key, now)
	}
}

// TooManyAttempts reports whether key is locked out. It does not count.
func (l *Limiter) TooManyAttempts(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live(key, l.now())) >= l.maxAttempts
}

// Hit records one failed attempt.
func (l *Limiter) Hit(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanup(now)
	hits := l.live(key, now)
	if len(hits) >= l.maxAttempts {
		hits = hits[1:]
	}
	l.hits[key] = append(hits, now)
}

// AvailableIn returns how long until the next attempt is allowed.
func (l *Limiter) AvailableIn(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.live(key, now)
	if len(hits) < l.maxAttempts {
		return 0
	}
	// The window reopens when the hit that filled it ages out.
	return hits[len(hits)-l.maxAttempts].Add(l.decay).Sub(now)
}

// Attempts returns the number of attempts counted against key in the window.
func (l *Limiter) Attempts(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live(key, l.now()))
}

// Clear forgets all attempts for key.
func (l *Limiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}
