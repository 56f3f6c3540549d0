package handler

import (
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	salon, err := h.settingsService.Get(middleware.SalonID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(salon)
}

// PATCH /api/settings
func (h *SettingsHandler) Patch(c *fiber.Ctx) error {
	var req service.SettingsPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	salon, err := h.settingsService.Patch(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(salon)
}
