package handler

import (
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req service.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	client, err := h.clientService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(client)
}

// GET /api/clients?search=&type=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.clientService.List(middleware.SalonID(c), c.Query("search"), c.Query("type"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(clients)
}

// GET /api/clients/:id
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	client, err := h.clientService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(client)
}

// PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	client, err := h.clientService.Update(middleware.SalonID(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(client)
}

// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.clientService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "client removed"})
}

// GET /api/clients/:id/metrics
func (h *ClientHandler) Metrics(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	metrics, err := h.clientService.Metrics(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(metrics)
}

// GET /api/clients/:id/orders
func (h *ClientHandler) Orders(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	orders, err := h.clientService.Orders(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}
