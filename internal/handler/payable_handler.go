package handler

import (
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PayableHandler struct {
	payableService service.PayableService
}

func NewPayableHandler(payableService service.PayableService) *PayableHandler {
	return &PayableHandler{payableService: payableService}
}

// POST /api/payables
func (h *PayableHandler) Create(c *fiber.Ctx) error {
	var req service.PayableCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	payable, err := h.payableService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(payable)
}

// GET /api/payables
func (h *PayableHandler) List(c *fiber.Ctx) error {
	payables, err := h.payableService.List(middleware.SalonID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(payables)
}

// GET /api/payables/:id
func (h *PayableHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	payable, err := h.payableService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(payable)
}

// PATCH /api/payables/:id
func (h *PayableHandler) Patch(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.PayablePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	payable, err := h.payableService.Patch(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(payable)
}

// PATCH /api/payables/:id/installments/:installmentId
func (h *PayableHandler) PatchInstallment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	installmentID, err := paramUUID(c, "installmentId")
	if err != nil {
		return fail(c, err)
	}
	var req service.PayableInstallmentPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	payable, err := h.payableService.PatchInstallment(middleware.SalonID(c), id, installmentID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(payable)
}

// DELETE /api/payables/:id
func (h *PayableHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.payableService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "payable removed"})
}
