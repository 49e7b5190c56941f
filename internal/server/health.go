package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger checks liveness of a dependency (e.g. *sql.DB, Redis client).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// healthHandler reports readiness. Each configured dependency is pinged with
// a short deadline; any failure flips the overall status to degraded but the
// endpoint itself always answers 200 so load balancers keep routing while
// storage hiccups (the pipeline is fail-open on storage anyway).
func healthHandler(deps map[string]Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "ok"
		checks := make(map[string]string, len(deps))
		for name, p := range deps {
			if p == nil {
				checks[name] = "skipped"
				continue
			}
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			if err := p.Ping(ctx); err != nil {
				checks[name] = err.Error()
				status = "degraded"
			} else {
				checks[name] = "ok"
			}
			cancel()
		}
		return c.JSON(fiber.Map{"status": status, "checks": checks})
	}
}
