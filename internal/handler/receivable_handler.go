package handler

import (
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReceivableHandler struct {
	receivableService service.ReceivableService
}

func NewReceivableHandler(receivableService service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService}
}

// POST /api/receivables
func (h *ReceivableHandler) Create(c *fiber.Ctx) error {
	var req service.ReceivableCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	receivable, err := h.receivableService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(receivable)
}

// GET /api/receivables
func (h *ReceivableHandler) List(c *fiber.Ctx) error {
	receivables, err := h.receivableService.List(middleware.SalonID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(receivables)
}

// GET /api/receivables/:id
func (h *ReceivableHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	receivable, err := h.receivableService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(receivable)
}

// PATCH /api/receivables/:id
func (h *ReceivableHandler) Patch(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.ReceivablePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	receivable, err := h.receivableService.Patch(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(receivable)
}

// PATCH /api/receivables/:id/installments/:installmentId
func (h *ReceivableHandler) PatchInstallment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	installmentID, err := paramUUID(c, "installmentId")
	if err != nil {
		return fail(c, err)
	}
	var req service.InstallmentPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	installment, err := h.receivableService.PatchInstallment(middleware.SalonID(c), id, installmentID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(installment)
}

// DELETE /api/receivables/:id
func (h *ReceivableHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.receivableService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "receivable removed"})
}
