package middleware

import (
	"time"

	"cookbook/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records every request by its route template.
type MetricsMiddleware struct {
	metrics service.AuthMetrics
}

// NewMetricsMiddleware is the constructor for MetricsMiddleware.
func NewMetricsMiddleware(metrics service.AuthMetrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Render now so the recorded status is the one sent.
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		m.metrics.RecordHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

		return nil
	}
}
