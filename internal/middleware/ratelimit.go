package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"citiesmanager/internal/metrics"
	"citiesmanager/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Buckets of idle
// clients expire from the cache after ttl.
type RateLimiter struct {
	log     *slog.Logger
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	clients *cache.Cache
}

func NewRateLimiter(log *slog.Logger, rps float64, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		log:     log,
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		clients: cache.New(ttl, 2*ttl),
	}
}

func (rl *RateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()

		if !rl.limiter(ip).Allow() {
			metrics.RateLimitedTotal.Inc()
			rl.log.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", c.Path()),
			)

			c.Response().Header().Set("Retry-After", "1")
			return c.JSON(http.StatusTooManyRequests, response.ErrorResponseWithDetails("rate_limited", "Too many requests"))
		}

		return next(c)
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	if l, ok := rl.clients.Get(ip); ok {
		rl.clients.Set(ip, l, rl.ttl)
		return l.(*rate.Limiter)
	}

	l := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.clients.Add(ip, l, rl.ttl); err != nil {
		// another request created it first
		if existing, ok := rl.clients.Get(ip); ok {
			return existing.(*rate.Limiter)
		}
	}

	return l
}
