package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"jiaa/data-service/internal/broadcast"
	"jiaa/data-service/internal/logging"
)

// NewWorkerApp builds the worker's HTTP app: the live score stream over
// WebSocket, health, and metrics. The stream replaces a server-streaming RPC;
// each connection is one hub subscriber.
func NewWorkerApp(hub *broadcast.Hub, checks map[string]Pinger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jiaa-data-worker",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	prom := fiberprometheus.New("jiaa_data_worker")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Get("/health", healthHandler(checks))

	app.Use("/ws/score", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/score", websocket.New(streamScores(hub)))

	return app
}

// streamScores forwards every hub update to the connection as JSON until the
// client disconnects. Unsubscribing on the way out never disturbs other
// subscribers or the pipeline.
func streamScores(hub *broadcast.Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		id, updates := hub.Subscribe()
		defer hub.Unsubscribe(id)

		log := logging.WithComponent("stream").WithField("subscriber", id)
		log.Info("score stream subscribed")
		defer log.Info("score stream closed")

		// Reads are discarded; the loop exists to notice the peer closing.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case u, ok := <-updates:
				if !ok {
					return
				}
				if err := conn.WriteJSON(u); err != nil {
					return
				}
			}
		}
	}
}
