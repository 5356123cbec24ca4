package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the per-client limiter table.
const maxTrackedClients = 10_000

// RateLimiter is a per-client token bucket keyed by remote IP. Wire it after
// chimiddleware.RealIP so proxies are seen through.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	clients *lru.Cache
	log     *slog.Logger
}

// NewRateLimiter allows perMinute requests per client with bursts of burst.
// Both must be positive.
func NewRateLimiter(perMinute, burst int, log *slog.Logger) (*RateLimiter, error) {
	if perMinute < 1 || burst < 1 {
		return nil, fmt.Errorf("middleware.NewRateLimiter: rate %d/min and burst %d must be positive", perMinute, burst)
	}
	clients, err := lru.New(maxTrackedClients)
	if err != nil {
		return nil, fmt.Errorf("middleware.NewRateLimiter: %w", err)
	}
	return &RateLimiter{
		limit:   rate.Limit(perMinute) / 60,
		burst:   burst,
		clients: clients,
		log:     log,
	}, nil
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.clients.Get(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	// Two racing first requests may each create one; the loser's bucket is dropped.
	if prev, ok, _ := l.clients.PeekOrAdd(key, lim); ok {
		return prev.(*rate.Limiter)
	}
	return lim
}

// Handler rejects requests over the client's budget with 429.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !l.limiter(key).Allow() {
			l.log.WarnContext(r.Context(), "rate limit exceeded", "client", key, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
