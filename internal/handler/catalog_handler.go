package handler

import (
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// POST /api/services
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req service.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	svc, err := h.catalogService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(svc)
}

// GET /api/services?active=true
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	services, err := h.catalogService.List(middleware.SalonID(c), c.Query("active") == "true")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(services)
}

// GET /api/services/:id
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	svc, err := h.catalogService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(svc)
}

// PUT /api/services/:id
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	svc, err := h.catalogService.Update(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(svc)
}

// PATCH /api/services/:id/toggle
func (h *CatalogHandler) Toggle(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	svc, err := h.catalogService.Toggle(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(svc)
}

// DELETE /api/services/:id
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.catalogService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "service removed"})
}
