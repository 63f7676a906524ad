package middleware

import (
	"strings"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
)

// The collectors register with the default registry, which accepts each name
// once per process, so every router shares one middleware.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: metrics.Namespace,
		Subsystem: "http",
		Skipper:   skipOperational,
	})
})

// Metrics counts and times requests by route template and status.
func Metrics() echo.MiddlewareFunc {
	return httpMetrics()
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}
