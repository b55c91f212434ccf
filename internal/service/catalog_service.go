package service

import (
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"
)

// ImageStorage is the subset of storage.ImageStore the catalog needs
type ImageStorage interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(filename string) error
}

type CatalogService interface {
	GetAllProducts() ([]model.Product, error)
	CreateProduct(req *CreateProductRequest, image *multipart.FileHeader) (*model.Product, error)
	UpdateProduct(id uint, req *UpdateProductRequest, image *multipart.FileHeader) (*model.Product, error)
	DeleteProduct(id uint) error
}

// CreateProductRequest carries the raw form values; Price and Stock are parsed by the service
// so a blank field is rejected instead of decoding to zero.
type CreateProductRequest struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Category string `form:"category" json:"category" validate:"required"`
	Price    string `form:"price" json:"price" validate:"required"`
	Stock    string `form:"stock" json:"stock" validate:"required"`
}

// UpdateProductRequest leaves a field unchanged when it is nil.
// A field that is sent but blank is a validation error.
type UpdateProductRequest struct {
	Name     *string `form:"name" json:"name" validate:"omitnil,min=1"`
	Category *string `form:"category" json:"category" validate:"omitnil,min=1"`
	Price    *string `form:"price" json:"price"`
	Stock    *string `form:"stock" json:"stock"`
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, validationError(fmt.Sprintf("Field 'Price' must be a number, got %q", raw))
	}
	if price < 0 {
		return 0, validationError("Field 'Price' must be greater than or equal to 0")
	}
	return price, nil
}

func parseStock(raw string) (int, error) {
	stock, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, validationError(fmt.Sprintf("Field 'Stock' must be an integer, got %q", raw))
	}
	return stock, nil
}

type catalogService struct {
	productRepo repository.ProductRepository
	images      ImageStorage
	events      ws.Publisher
}

func NewCatalogService(pRepo repository.ProductRepository, images ImageStorage, events ws.Publisher) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		images:      images,
		events:      events,
	}
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) CreateProduct(req *CreateProductRequest, image *multipart.FileHeader) (*model.Product, error) {
	// 1. Validasi Struct Dasar
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseStock(req.Stock)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    price,
		Stock:    stock,
	}

	// 2. Simpan gambar (optional)
	if image != nil {
		filename, err := s.images.Save(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		product.ImagePath = &filename
	}

	// 3. Simpan ke Database; drop the new file if the row is not written
	if err := s.productRepo.Create(product); err != nil {
		s.removeImage(product.ImagePath)
		return nil, translateDBError(err, ErrProductNotFound)
	}

	s.publish("product_created", product, fmt.Sprintf("Product '%s' created", product.Name))
	return product, nil
}

func (s *catalogService) UpdateProduct(id uint, req *UpdateProductRequest, image *multipart.FileHeader) (*model.Product, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}

	var price *float64
	if req.Price != nil {
		v, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		price = &v
	}
	var stock *int
	if req.Stock != nil {
		v, err := parseStock(*req.Stock)
		if err != nil {
			return nil, err
		}
		stock = &v
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, translateDBError(err, ErrProductNotFound)
	}
	oldStock := existing.Stock
	oldImage := existing.ImagePath

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if price != nil {
		existing.Price = *price
	}
	if stock != nil {
		existing.Stock = *stock
	}

	if image != nil {
		filename, err := s.images.Save(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		existing.ImagePath = &filename
	}

	if err := s.productRepo.Update(existing); err != nil {
		if image != nil {
			s.removeImage(existing.ImagePath)
		}
		return nil, translateDBError(err, ErrProductNotFound)
	}

	// The replaced file is no longer referenced by any row
	if image != nil {
		s.removeImage(oldImage)
	}

	s.publish("product_updated", existing, fmt.Sprintf("Product '%s' updated (stock %d -> %d)", existing.Name, oldStock, existing.Stock))
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return translateDBError(err, ErrProductNotFound)
	}

	if err := s.productRepo.Delete(id); err != nil {
		return translateDBError(err, ErrProductNotFound)
	}
	s.removeImage(existing.ImagePath)

	s.publish("product_deleted", existing, fmt.Sprintf("Product '%s' deleted", existing.Name))
	return nil
}

// removeImage is best effort; a leftover file never fails the request.
func (s *catalogService) removeImage(filename *string) {
	if filename == nil || *filename == "" {
		return
	}
	if err := s.images.Remove(*filename); err != nil {
		log.Printf("Warning: failed to remove image %s: %v", *filename, err)
	}
}

func (s *catalogService) publish(action string, p *model.Product, message string) {
	s.events.Publish(ws.Event{
		Type:   "stock_update",
		Action: action,
		Data: map[string]interface{}{
			"id":       p.ID,
			"name":     p.Name,
			"category": p.Category,
			"price":    p.Price,
			"stock":    p.Stock,
		},
		Message: message,
	})
}
