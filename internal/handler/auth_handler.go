package handler

import (
	"errors"

	"go-pos-backend/internal/service"
	"go-pos-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is accepted as JSON or form fields
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginForm handles the HTML sign-in form. No session is created.
// POST /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	_, err := h.authService.CheckCredentials(c.FormValue("username"), c.FormValue("password"))
	if err == nil {
		return c.Redirect("/dashboard")
	}
	if !errors.Is(err, service.ErrInvalidCredentials) {
		return respondError(c, err)
	}
	return renderPage(c, "index.html", web.IndexData{Error: "Invalid credentials"})
}

// Login handles the web client's JSON sign-in and returns a bearer token
// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return respondError(c, err)
	}

	return c.JSON(response)
}
