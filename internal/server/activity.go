package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"jiaa/data-service/internal/history"
)

// activityHandler serves recent-activity listings for one user. Listing only;
// time-series aggregation lives in the statistics service, not here.
type activityHandler struct {
	repo history.Repository
}

func (h *activityHandler) recent(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		// Fall back to the authenticated caller's own records.
		if id, ok := c.Locals("user_id").(string); ok {
			userID = id
		}
	}
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing user_id"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	records, err := h.repo.ListRecent(c.Context(), userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if records == nil {
		records = []*history.Record{}
	}
	return c.JSON(fiber.Map{"success": true, "data": records})
}
