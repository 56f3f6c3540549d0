package handler

import (
	"strconv"
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

type CostHandler struct {
	costService service.CostService
}

func NewCostHandler(costService service.CostService) *CostHandler {
	return &CostHandler{costService: costService}
}

func monthQuery(c *fiber.Ctx) string {
	if v := c.Query("month"); v != "" {
		return v
	}
	return billing.MonthKey(time.Now())
}

// POST /api/costs
func (h *CostHandler) Create(c *fiber.Ctx) error {
	var req service.CostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	cost, err := h.costService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(cost)
}

// GET /api/costs?month=YYYY-MM&type=&supplierId=
func (h *CostHandler) List(c *fiber.Ctx) error {
	var f repository.CostFilter
	if v := c.Query("type"); v != "" {
		f.Type = model.CostType(strings.ToUpper(v))
	}
	if v := c.Query("supplierId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid supplierId")
		}
		f.SupplierID = id
	}

	costs, err := h.costService.ListMonth(middleware.SalonID(c), monthQuery(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(costs)
}

// GET /api/costs/:id
func (h *CostHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	cost, err := h.costService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cost)
}

// PATCH /api/costs/:id
func (h *CostHandler) Patch(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.CostPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	cost, err := h.costService.Patch(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cost)
}

// DELETE /api/costs/:id
func (h *CostHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.costService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "cost removed"})
}

// GET /api/costs/summary?month=YYYY-MM&workDays=22
func (h *CostHandler) Summary(c *fiber.Ctx) error {
	var workDays *int
	if v := c.Query("workDays"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid workDays")
		}
		workDays = &n
	}
	summary, err := h.costService.Summary(middleware.SalonID(c), monthQuery(c), workDays)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
