package handler

import (
	"time"

	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GET /api/dashboard/overview
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.dashboardService.Overview(middleware.SalonID(c), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(overview)
}
