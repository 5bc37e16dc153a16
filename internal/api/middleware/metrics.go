// Package middleware provides Echo middleware for the mock grocery API.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/groceries/internal/metrics"
)

const (
	metricsPath = "/metrics"

	// unmatchedRoute labels requests no route matched, so stray item ids
	// never become label values.
	unmatchedRoute = "unmatched"
)

// Metrics records request counts and latency per route pattern. Scrapes
// of /metrics are not counted, and /status sets groceries_status_up
// instead of the request metrics.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			switch route := routeLabel(c, err); route {
			case metricsPath:
			case probePath:
				if status == http.StatusOK {
					metrics.StatusUp.Set(1)
				} else {
					metrics.StatusUp.Set(0)
				}
			default:
				labels := []string{c.Request().Method, route, strconv.Itoa(status)}
				metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
				metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			}
			return err
		}
	}
}

// routeLabel is the matched route pattern, e.g. /item/:id.
func routeLabel(c echo.Context, err error) string {
	route := c.Path()
	if route == "" || errors.Is(err, echo.ErrNotFound) {
		return unmatchedRoute
	}
	return route
}

// responseStatus is the status the client will see. Errors returned up
// the chain are written later by echo's error handler.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
