package handler

import (
	"go-pos-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

func renderPage(c *fiber.Ctx, name string, data interface{}) error {
	page, err := web.Render(name, data)
	if err != nil {
		return respondError(c, err)
	}
	c.Type("html", "utf-8")
	return c.Send(page)
}

// Index serves the landing page with the login form
// GET /
func Index(c *fiber.Ctx) error {
	return renderPage(c, "index.html", web.IndexData{})
}

// Dashboard serves the back-office page
// GET /dashboard
func Dashboard(c *fiber.Ctx) error {
	return renderPage(c, "dashboard.html", nil)
}
