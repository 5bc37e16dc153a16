package mockapi

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/donaldgifford/groceries/internal/api/middleware"
)

// NewServer builds the echo server exposing the grocery API backed by s,
// plus /metrics.
func NewServer(s *Store, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.RequestLog(logger))
	e.Use(mw.Recovery(logger))
	e.Use(mw.Metrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Groceries API", "1.0.0"))
	RegisterRoutes(api, NewHandler(s))

	return e
}
