package handler

import (
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(resp)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err == service.ErrInvalidCredentials {
		return c.Status(401).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.authService.Me(middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
