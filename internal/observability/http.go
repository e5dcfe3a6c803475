package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber. The
// portal collectors are registered on first use, so mounting the endpoint
// before any request has been served still yields the full metric set.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	handler := promhttp.Handler()
	return adaptor.HTTPHandler(handler)
}
