package handler

import (
	"strings"
	"time"

	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MaterialHandler struct {
	materialService service.MaterialService
}

func NewMaterialHandler(materialService service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// POST /api/materials
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var req service.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	material, err := h.materialService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(material)
}

// GET /api/materials?q=&active=true&supplierId=
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	f := repository.MaterialFilter{
		Search:     c.Query("q"),
		ActiveOnly: c.Query("active") == "true",
	}
	if v := c.Query("supplierId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid supplierId")
		}
		f.SupplierID = id
	}

	materials, err := h.materialService.List(middleware.SalonID(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(materials)
}

// GET /api/materials/:id
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	material, err := h.materialService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(material)
}

// PUT /api/materials/:id
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	material, err := h.materialService.Update(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(material)
}

// DELETE /api/materials/:id
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.materialService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "material removed"})
}

// POST /api/materials/movements
func (h *MaterialHandler) CreateMovement(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	movement, err := h.materialService.RecordMovement(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(movement)
}

// GET /api/materials/movements?month=YYYY-MM or ?materialId=&type=&from=&to=
func (h *MaterialHandler) ListMovements(c *fiber.Ctx) error {
	var f repository.MovementFilter
	if v := c.Query("materialId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid materialId")
		}
		f.MaterialID = id
	}
	if v := c.Query("type"); v != "" {
		f.Type = model.MovementType(strings.ToUpper(v))
	}
	if v := c.Query("month"); v != "" {
		from, to, err := billing.MonthRange(v)
		if err != nil {
			return badRequest(c, err.Error())
		}
		f.From, f.To = from, to
	}
	// Explicit bounds override the month window.
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid from")
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid to")
		}
		f.To = t
	}

	movements, err := h.materialService.ListMovements(middleware.SalonID(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(movements)
}

// GET /api/materials/stock
func (h *MaterialHandler) Stock(c *fiber.Ctx) error {
	stock, err := h.materialService.Stock(middleware.SalonID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stock)
}

// GET /api/materials/:id/suppliers
func (h *MaterialHandler) SupplierPrices(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	prices, err := h.materialService.SupplierPrices(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(prices)
}

// GET /api/materials/summary?month=YYYY-MM
func (h *MaterialHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.materialService.Summary(middleware.SalonID(c), monthQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
