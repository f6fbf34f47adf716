package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kushtati/kushtati-immo/internal/http/respond"
)

// NewLimiter builds an in-process limiter from a formatted rate such as "20-M".
func NewLimiter(rate string) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parsing rate %q: %w", rate, err)
	}

	return limiter.New(memory.NewStore(), r), nil
}

// RateLimit rejects clients that exceeded l, keyed by IP.
func RateLimit(l *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := l.GetIPKey(r)

			lctx, err := l.Get(r.Context(), ip)
			if err != nil {
				slog.Error("failed to get rate limit context", "ip", ip, "error", err)
				respond.Error(w, http.StatusInternalServerError, "internal error")

				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))

			if lctx.Reached {
				slog.Warn("rate limit exceeded", "ip", ip, "limit", lctx.Limit)
				respond.Error(w, http.StatusTooManyRequests, "too many requests, please try again later")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
