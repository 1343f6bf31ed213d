package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Abhi-engg/farmstand-backend/api/responses"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
)

// RateLimitStore is the redis surface the limiter needs.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit throttles a traffic surface per client IP using a fixed window
// counter. A nil store disables the limiter.
func RateLimit(name string, store RateLimitStore, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || limit <= 0 || window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := fmt.Sprintf("%s:%s", name, clientIP(r))
			allowed, _, err := store.FixedWindowAllow(r.Context(), scope, limit, window)
			if err != nil {
				// A broken counter should not take the endpoint down.
				if logg != nil {
					logg.Warn(r.Context(), fmt.Sprintf("rate limiter unavailable: %v", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, slow down"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
