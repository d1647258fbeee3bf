package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter applies a per-IP token bucket. Entries idle longer than
// staleAfter are dropped inline during lookup, which keeps the map bounded
// without a background goroutine.
type rateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
	trustProxy bool
	logger     *slog.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(perMinute, burst int, trustProxy bool, logger *slog.Logger) *rateLimiter {
	return &rateLimiter{
		visitors:   make(map[string]*visitor),
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      burst,
		staleAfter: 10 * time.Minute,
		trustProxy: trustProxy,
		logger:     logger,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for addr, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.staleAfter {
			delete(rl.visitors, addr)
		}
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, rl.trustProxy)
		if !rl.allow(ip) {
			rl.logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			writeError(w, rl.logger, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the caller's address. Proxy headers are only honored when
// the deployment fronts the server with a trusted proxy; otherwise they are
// trivially spoofable.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// first entry is the original client
			if first, _, found := strings.Cut(xff, ","); found || first != "" {
				return strings.TrimSpace(first)
			}
		}
		if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
			return strings.TrimSpace(realIP)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
