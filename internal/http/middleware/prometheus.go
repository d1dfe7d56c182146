package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware holds the HTTP metrics of one Fiber app.
type PrometheusMiddleware struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusMiddleware creates the metrics and registers them on reg.
// service labels every series so the gateway and the backend can share a scrape target.
func NewPrometheusMiddleware(reg prometheus.Registerer, service string) (*PrometheusMiddleware, error) {
	constLabels := prometheus.Labels{"service": service}
	m := &PrometheusMiddleware{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests processed.",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency.",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// unmeteredPaths are scrape and liveness endpoints polled by the platform.
var unmeteredPaths = map[string]bool{
	"/metrics": true,
	"/healthz": true,
}

// routeLabel is the matched route pattern, so /api/documents/12/preview is
// counted as /api/documents/:id/preview.
func routeLabel(c *fiber.Ctx) string {
	if p := c.Route().Path; p != "" {
		return p
	}
	return c.Path()
}

func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Handler returns the fiber middleware handler.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if unmeteredPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		route := routeLabel(c)
		m.requestCount.WithLabelValues(c.Method(), route, strconv.Itoa(statusOf(c, err))).Inc()
		m.requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
