package handler

import (
	"go-mesinkasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles username/password authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Login success", resp)
}

// LoginPIN is the quick cashier login
// POST /api/auth/login-pin
func (h *AuthHandler) LoginPIN(c *fiber.Ctx) error {
	var req service.PINLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.LoginWithPIN(&req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Login success", resp)
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(actorID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", user)
}
