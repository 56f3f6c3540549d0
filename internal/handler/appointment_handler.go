package handler

import (
	"strings"
	"time"

	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	apptService service.AppointmentService
}

func NewAppointmentHandler(apptService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService}
}

// POST /api/appointments
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req service.AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	appt, err := h.apptService.Create(middleware.SalonID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(appt)
}

// GET /api/appointments?from=&to=&clientId=&status=
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	var f repository.AppointmentFilter
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
	if v := c.Query("clientId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "invalid clientId")
		}
		f.ClientID = id
	}
	if v := c.Query("status"); v != "" {
		f.Status = model.AppointmentStatus(strings.ToUpper(v))
	}

	appts, err := h.apptService.List(middleware.SalonID(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(appts)
}

// GET /api/appointments/:id
func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	appt, err := h.apptService.Get(middleware.SalonID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(appt)
}

type appointmentPatchRequest struct {
	StartAt *time.Time `json:"startAt"`
	Status  *string    `json:"status"`
}

// PATCH /api/appointments/:id
func (h *AppointmentHandler) Patch(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req appointmentPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}

	salonID := middleware.SalonID(c)
	if req.StartAt != nil {
		if _, err := h.apptService.Reschedule(salonID, id, *req.StartAt); err != nil {
			return fail(c, err)
		}
	}
	if req.Status != nil {
		if _, err := h.apptService.SetStatus(salonID, id, *req.Status); err != nil {
			return fail(c, err)
		}
	}

	appt, err := h.apptService.Get(salonID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(appt)
}

// DELETE /api/appointments/:id
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.apptService.Delete(middleware.SalonID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "appointment removed"})
}
