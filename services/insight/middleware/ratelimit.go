package middleware

import (
	"log/slog"
	"net"
	"net/http"

	redisstore "github.com/GOKULKRISHNA7868/tas-insight/internal/redis"
	"github.com/GOKULKRISHNA7868/tas-insight/pkg/telemetry"
)

// RateLimit rejects requests over the per-client limit with 429. The key is
// the client IP. On limiter failure the request is allowed through: a Redis
// outage must not take the read API down with it.
func RateLimit(limiter redisstore.RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Error("rate limiter error", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				telemetry.RequestsRateLimited.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
