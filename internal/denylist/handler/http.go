// Package handler exposes the denylist admin and client API over HTTP.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jiaa/data-service/internal/denylist/domain"
	"jiaa/data-service/internal/denylist/service"
)

// Handler serves the denylist routes.
type Handler struct {
	svc *service.Service
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the denylist routes on the given router. public receives
// the client-facing reads, admin the mutating and full-view routes (the
// caller decides which middleware guards each).
func (h *Handler) Register(public fiber.Router, admin fiber.Router) {
	public.Get("/blacklist", h.getBlacklist)
	public.Get("/whitelist", h.getWhitelist)
	public.Post("/blacklist/report", h.report)

	admin.Get("/blacklist/all", h.getAll)
	admin.Post("/blacklist/review", h.review)
	admin.Post("/blacklist/add", h.addBlacklisted)
	admin.Delete("/blacklist/remove", h.remove)
	admin.Post("/whitelist/add", h.addWhitelisted)
}

type appRequest struct {
	AppName string `json:"appName"`
	IsGame  *bool  `json:"isGame"`
	Status  string `json:"status"`
}

func (h *Handler) getBlacklist(c *fiber.Ctx) error {
	items, err := h.svc.Active(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *Handler) getWhitelist(c *fiber.Ctx) error {
	items, err := h.svc.Whitelisted(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *Handler) getAll(c *fiber.Ctx) error {
	items, err := h.svc.All(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *Handler) report(c *fiber.Ctx) error {
	req, err := parseAppRequest(c)
	if req == nil {
		return err
	}
	isGame := true
	if req.IsGame != nil {
		isGame = *req.IsGame
	}
	item, err := h.svc.Report(c.Context(), req.AppName, isGame)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "item": item})
}

func (h *Handler) review(c *fiber.Ctx) error {
	req, err := parseAppRequest(c)
	if req == nil {
		return err
	}
	ok, err := h.svc.Review(c.Context(), req.AppName, domain.Status(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrUnknownStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "unknown status"})
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": ok})
}

func (h *Handler) addBlacklisted(c *fiber.Ctx) error {
	req, err := parseAppRequest(c)
	if req == nil {
		return err
	}
	if err := h.svc.AddBlacklisted(c.Context(), req.AppName); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) addWhitelisted(c *fiber.Ctx) error {
	req, err := parseAppRequest(c)
	if req == nil {
		return err
	}
	if err := h.svc.AddWhitelisted(c.Context(), req.AppName); err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	req, err := parseAppRequest(c)
	if req == nil {
		return err
	}
	ok, err := h.svc.Remove(c.Context(), req.AppName)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": ok})
}

// parseAppRequest decodes and validates the request body. On failure it
// writes the error response itself and returns a nil request.
func parseAppRequest(c *fiber.Ctx) (*appRequest, error) {
	var req appRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid body"})
	}
	if req.AppName == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing appName"})
	}
	return &req, nil
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
}
