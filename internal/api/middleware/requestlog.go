package middleware

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// probePath is hit by every client setup attempt. Repeated successful
// probes are logged once until the next failure.
const probePath = "/status"

// RequestLog returns Echo middleware that logs requests with structured fields.
// It reuses the client's X-Request-ID when present, generates one otherwise,
// and propagates it through the response header and echo context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probeQuiet atomic.Bool

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := responseStatus(c, err)
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelWarn
			}

			if path == probePath {
				if status < 300 {
					if probeQuiet.Swap(true) {
						return err
					}
				} else {
					probeQuiet.Store(false)
					level = slog.LevelWarn
				}
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"route", routeLabel(c, err),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
