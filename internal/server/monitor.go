package server

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// monitorStore holds the most recent foreground-application list reported by
// a desktop client. In-memory only; it is a live diagnostic view, not data.
type monitorStore struct {
	mu   sync.RWMutex
	apps []string
}

func (m *monitorStore) set(apps []string) {
	m.mu.Lock()
	m.apps = apps
	m.mu.Unlock()
}

func (m *monitorStore) get() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.apps...)
}

func (m *monitorStore) postHandler(c *fiber.Ctx) error {
	var req struct {
		Apps []string `json:"apps"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid body"})
	}
	if req.Apps != nil {
		m.set(req.Apps)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (m *monitorStore) getHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": m.get()})
}
