// Package api assembles the Echo server, Huma operations and middleware.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/dealsense/api/openapi"
	"github.com/donaldgifford/dealsense/internal/api/handlers"
	mw "github.com/donaldgifford/dealsense/internal/api/middleware"
	"github.com/donaldgifford/dealsense/internal/config"
)

// Service is everything the API needs from the engine.
type Service interface {
	handlers.DealService
	handlers.ProfileService
	handlers.Ingester
	handlers.Seeder
}

// Deps are the collaborators of the HTTP server.
type Deps struct {
	Service Service
	Store   handlers.Pinger
	Logger  *slog.Logger
	Version string
}

// NewServer builds the Echo instance with every route registered.
func NewServer(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Recovery(deps.Logger))
	e.Use(mw.RequestLog(deps.Logger))
	e.Use(mw.Metrics())
	e.Use(mw.CORS(cfg.Auth.AllowedOrigins))
	e.Use(mw.APIKey(cfg.Auth.APIKey))
	if cfg.RateLimit.Enabled {
		e.Use(mw.RateLimit(cfg.RateLimit.Max, cfg.RateLimit.Window))
	}

	health := handlers.NewHealthHandler(deps.Store)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	const title = "DealSense API"
	openapi.RegisterRoutes(e, title)

	humaCfg := huma.DefaultConfig(title, deps.Version)
	humaCfg.Info.Description = "Deal matching, trust scoring and ranking."
	api := humaecho.New(e, humaCfg)

	handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(deps.Service))
	handlers.RegisterProfileRoutes(api, handlers.NewProfilesHandler(deps.Service))
	handlers.RegisterIngestRoutes(api, handlers.NewIngestHandler(deps.Service, deps.Service))

	return e
}
