package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/clientlens/clientlens-api/internal/pkg/metrics"
)

const (
	limiterIdleTTL  = 10 * time.Minute
	sweepInterval   = time.Minute
	maxPeekBodySize = 64 << 10
)

// Limiters hands out one token bucket per key and forgets keys that have
// been idle for limiterIdleTTL.
type Limiters struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiters(rps float64, burst int) *Limiters {
	return &Limiters{
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		entries: make(map[string]*limiterEntry),
	}
}

// Allow reports whether key may make one more request now.
func (l *Limiters) Allow(key string) bool {
	_, ok := l.reserve(key)
	return ok
}

// reserve takes one token from key's bucket if one is available now. The
// returned cancel gives the token back.
func (l *Limiters) reserve(key string) (cancel func(), ok bool) {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= sweepInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}
	e, found := l.entries[key]
	if !found {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return nil, false
	}
	if r.DelayFrom(now) > 0 {
		r.CancelAt(now)
		return nil, false
	}
	return func() { r.CancelAt(now) }, true
}

func (l *Limiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// KeyFunc derives the rate limit key for a request.
type KeyFunc func(c echo.Context) string

// Rule is one bucket family a request must fit into.
type Rule struct {
	Limiters *Limiters
	Key      KeyFunc
}

// RateLimit rejects requests with 429 unless every rule has a token for
// them. A rejected request gives back the tokens it took from earlier rules.
func RateLimit(rules ...Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			taken := make([]func(), 0, len(rules))
			for _, r := range rules {
				cancel, ok := r.Limiters.reserve(r.Key(c))
				if !ok {
					for _, undo := range taken {
						undo()
					}
					metrics.RateLimitedTotal.Inc()
					return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please slow down")
				}
				taken = append(taken, cancel)
			}
			return next(c)
		}
	}
}

// IPKey keys a request by client address.
func IPKey(c echo.Context) string {
	return "ip:" + c.RealIP()
}

// UserKey keys a JSON request by its "userId" field, falling back to the
// client IP when the body has none. The body is restored for the handler.
func UserKey(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return IPKey(c)
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxPeekBodySize))
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return IPKey(c)
	}

	var probe struct {
		UserID json.Number `json:"userId"`
	}
	if json.Unmarshal(body, &probe) == nil && probe.UserID != "" {
		if id, err := strconv.ParseInt(probe.UserID.String(), 10, 64); err == nil {
			return "user:" + strconv.FormatInt(id, 10)
		}
	}
	return IPKey(c)
}
