package handler

import (
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FinanceHandler struct {
	financeService service.FinanceService
}

func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// rangeQuery reads from/to, falling back to the current month window.
func rangeQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, to, _ := billing.MonthRange(billing.MonthKey(time.Now()))
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Invalid("invalid from")
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.Invalid("invalid to")
		}
		to = t
	}
	return from, to, nil
}

// GET /api/finance/summary?month=YYYY-MM
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.financeService.Summary(middleware.SalonID(c), monthQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// GET /api/finance/flow?from=&to=
func (h *FinanceHandler) Flow(c *fiber.Ctx) error {
	from, to, err := rangeQuery(c)
	if err != nil {
		return fail(c, err)
	}
	flow, err := h.financeService.Flow(middleware.SalonID(c), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(flow)
}

// GET /api/finance/cashflow?from=&to=
func (h *FinanceHandler) Cashflow(c *fiber.Ctx) error {
	from, to, err := rangeQuery(c)
	if err != nil {
		return fail(c, err)
	}
	report, err := h.financeService.Cashflow(middleware.SalonID(c), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// GET /api/finance/receivables/month?month=YYYY-MM
func (h *FinanceHandler) ReceivablesMonth(c *fiber.Ctx) error {
	result, err := h.financeService.ReceivablesMonth(middleware.SalonID(c), monthQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// GET /api/finance/payables/month?month=YYYY-MM
func (h *FinanceHandler) PayablesMonth(c *fiber.Ctx) error {
	result, err := h.financeService.PayablesMonth(middleware.SalonID(c), monthQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// POST /api/finance/transactions
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.CashTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	tx, err := h.financeService.CreateTransaction(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(tx)
}

// GET /api/finance/transactions?from=&to=
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	from, to, err := rangeQuery(c)
	if err != nil {
		return fail(c, err)
	}
	txs, err := h.financeService.ListTransactions(middleware.SalonID(c), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(txs)
}

// DELETE /api/finance/transactions/:id
func (h *FinanceHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.financeService.DeleteTransaction(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "transaction removed"})
}

// POST /api/finance/categories
func (h *FinanceHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CashCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	category, err := h.financeService.CreateCategory(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

// GET /api/finance/categories
func (h *FinanceHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.financeService.ListCategories(middleware.SalonID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

// DELETE /api/finance/categories/:id
func (h *FinanceHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.financeService.DeleteCategory(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "category removed"})
}

// GET /api/finance/cost-categories?month=YYYY-MM
func (h *FinanceHandler) CostCategories(c *fiber.Ctx) error {
	sums, err := h.financeService.CostCategories(middleware.SalonID(c), monthQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sums)
}
