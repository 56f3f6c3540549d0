package handler

import (
	"strings"

	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// POST /api/budgets
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var req service.BudgetCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	budget, err := h.budgetService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(budget)
}

// GET /api/budgets?status=&clientId=
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	var f repository.BudgetFilter
	if v := c.Query("status"); v != "" {
		f.Status = model.BudgetStatus(strings.ToUpper(v))
	}
	if v := c.Query("clientId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid clientId")
		}
		f.ClientID = id
	}

	budgets, err := h.budgetService.List(middleware.SalonID(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budgets)
}

// GET /api/budgets/:id
func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	budget, err := h.budgetService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budget)
}

// GET /api/budgets/:id/full
func (h *BudgetHandler) GetFull(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	budget, err := h.budgetService.GetFull(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budget)
}

// PATCH /api/budgets/:id and /api/budgets/:id/full
func (h *BudgetHandler) Patch(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.BudgetPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	budget, err := h.budgetService.Patch(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budget)
}

// POST /api/budgets/:id/send
func (h *BudgetHandler) Send(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	budget, err := h.budgetService.Send(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budget)
}

// POST /api/budgets/:id/approve
func (h *BudgetHandler) Approve(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.budgetService.Approve(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// POST /api/budgets/:id/cancel
func (h *BudgetHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	budget, err := h.budgetService.Cancel(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budget)
}

// DELETE /api/budgets/:id
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.budgetService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "budget removed"})
}
