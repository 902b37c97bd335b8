package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citiesmanager/internal/lib/logger/handlers/slogdiscard"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newLimitedEcho(rl *RateLimiter) *echo.Echo {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, rl.Middleware)

	return e
}

func doLogin(e *echo.Echo, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(slogdiscard.NewDiscardLogger(), 0.001, 3, time.Minute)
	e := newLimitedEcho(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1"))
	}

	assert.Equal(t, http.StatusTooManyRequests, doLogin(e, "10.0.0.1"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(slogdiscard.NewDiscardLogger(), 0.001, 1, time.Minute)
	e := newLimitedEcho(rl)

	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doLogin(e, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.2"))
}

func TestPrometheusMetrics_PassesThroughErrors(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics)
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
