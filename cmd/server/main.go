// Server exposes the collaborator HTTP surface: denylist admin API, monitor
// apps, recent activity, health, and metrics. Set DATABASE_URL; JWT_SECRET
// enables auth on the admin routes (required when APP_ENV=production).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"jiaa/data-service/internal/config"
	"jiaa/data-service/internal/db"
	denylistrepo "jiaa/data-service/internal/denylist/repository"
	denylistservice "jiaa/data-service/internal/denylist/service"
	"jiaa/data-service/internal/history"
	"jiaa/data-service/internal/logging"
	"jiaa/data-service/internal/security"
	"jiaa/data-service/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.WithComponent("server").WithError(err).Fatal("config")
	}
	logging.Init(cfg.Env)
	log := logging.WithComponent("server")

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("postgres")
	}
	defer conn.Close()

	var verifier *security.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = security.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	} else {
		// Config.Load rejects this combination in production.
		log.Warn("JWT_SECRET not set, admin routes are unauthenticated")
	}

	app := server.NewApp(server.Deps{
		Denylist: denylistservice.NewService(denylistrepo.NewPostgresRepository(conn)),
		History:  history.NewPostgresRepository(conn),
		Verifier: verifier,
		HealthChecks: map[string]server.Pinger{
			"postgres": server.PingerFunc(func(ctx context.Context) error { return conn.PingContext(ctx) }),
		},
	})

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("listening")
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	_ = app.Shutdown()
	log.Info("stopped")
}
