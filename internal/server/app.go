// Package server assembles the data service's HTTP API: denylist
// administration, monitor view, recent-activity listing, health, and metrics.
package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	denylisthandler "jiaa/data-service/internal/denylist/handler"
	denylistservice "jiaa/data-service/internal/denylist/service"
	"jiaa/data-service/internal/history"
	"jiaa/data-service/internal/security"
	"jiaa/data-service/internal/server/middleware"
)

// Deps holds the collaborators of the HTTP API. Nil fields disable the
// corresponding routes.
type Deps struct {
	// Denylist serves the blacklist/whitelist API. If nil, those routes are not registered.
	Denylist *denylistservice.Service
	// History serves the recent-activity listing. If nil, the route is not registered.
	History history.Repository
	// Verifier guards admin and stats routes. If nil, auth is disabled (dev only).
	Verifier *security.TokenVerifier
	// HealthChecks are pinged by GET /health, keyed by dependency name.
	HealthChecks map[string]Pinger
}

// NewApp builds the Fiber application with all routes and middleware wired.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jiaa-data-service",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	prom := fiberprometheus.New("jiaa_data_service")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Get("/health", healthHandler(deps.HealthChecks))

	api := app.Group("/api/v1")
	authed := api.Group("", middleware.RequireAuth(deps.Verifier))

	if deps.Denylist != nil {
		// Client-facing reads stay open: desktop clients poll the blacklist
		// before a user session exists.
		denylisthandler.NewHandler(deps.Denylist).Register(api, authed)
	}

	if deps.History != nil {
		h := &activityHandler{repo: deps.History}
		authed.Get("/activity/recent", h.recent)
	}

	monitor := &monitorStore{}
	api.Post("/monitor/apps", monitor.postHandler)
	api.Get("/monitor/apps", monitor.getHandler)

	return app
}
