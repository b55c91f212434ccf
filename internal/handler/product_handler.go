package handler

import (
	"mime/multipart"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service      service.CatalogService
	uploadPrefix string
	placeholder  string
}

func NewProductHandler(s service.CatalogService, uploadPrefix, placeholder string) *ProductHandler {
	return &ProductHandler{service: s, uploadPrefix: uploadPrefix, placeholder: placeholder}
}

// optionalImage returns the "image" upload, or nil when the request carries none
func optionalImage(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

func (h *ProductHandler) productID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *ProductHandler) toResponse(p *model.Product) model.ProductResponse {
	return p.ToResponse(h.uploadPrefix, h.placeholder)
}

// GetProducts returns every product
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]model.ProductResponse, len(products))
	for i := range products {
		resp[i] = h.toResponse(&products[i])
	}
	return c.JSON(resp)
}

// CreateProduct accepts multipart or urlencoded form fields plus an optional image
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid form data"})
	}

	product, err := h.service.CreateProduct(&req, optionalImage(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(h.toResponse(product))
}

// UpdateProduct changes only the submitted fields
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid form data"})
	}

	product, err := h.service.UpdateProduct(id, &req, optionalImage(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(h.toResponse(product))
}

// DeleteProduct removes the product row; sales history is untouched
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Deleted"})
}
