package handler

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// Checkout records a sale from the cart payload
// POST /api/checkout
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.Checkout(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(sale.ToResponse())
}

// GetSales returns all sales, newest first
// GET /api/sales
func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]model.SaleResponse, len(sales))
	for i := range sales {
		resp[i] = sales[i].ToResponse()
	}
	return c.JSON(resp)
}
