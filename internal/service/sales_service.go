package service

import (
	"fmt"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invoiceIDLength = 6

type SalesService interface {
	Checkout(req *CheckoutRequest) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
}

// CheckoutItem is one cart line. ID may name a deleted or unknown product.
type CheckoutItem struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Qty   int     `json:"qty" validate:"gt=0"`
}

// CheckoutRequest mirrors the web client's cart payload. Total already includes tax
// and is not checked against the items.
type CheckoutRequest struct {
	CustomerName  string         `json:"customerName" validate:"required"`
	CustomerPhone string         `json:"customerPhone" validate:"required"`
	Total         *float64       `json:"total" validate:"required,gte=0"`
	PaymentMethod string         `json:"paymentMethod" validate:"required"`
	Items         []CheckoutItem `json:"items" validate:"required"`
}

type stockChange struct {
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`
}

type salesService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	events       ws.Publisher
	now          func() time.Time
	newInvoiceID func() string
}

func NewSalesService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, db *gorm.DB, events ws.Publisher) SalesService {
	return &salesService{
		saleRepo:     sRepo,
		productRepo:  pRepo,
		db:           db,
		events:       events,
		now:          time.Now,
		newInvoiceID: randomInvoiceID,
	}
}

func randomInvoiceID() string {
	return uuid.NewString()[:invoiceIDLength]
}

func (s *salesService) Checkout(req *CheckoutRequest) (*model.Sale, error) {
	// 1. Validasi header
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}

	sale := &model.Sale{
		InvoiceID:     s.newInvoiceID(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   *req.Total,
		PaymentMethod: req.PaymentMethod,
		DateCreated:   s.now().UTC(),
	}
	var changes []stockChange

	// Gunakan Transaction Block (Atomic Operation): sale, items and stock all commit or none do
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.CreateSale(tx, sale); err != nil {
			return err
		}

		for i := range req.Items {
			line := req.Items[i]
			if msg := validator.FirstError(&line); msg != "" {
				return validationError(fmt.Sprintf("item %d: %s", i, msg))
			}

			item := model.SaleItem{
				SaleID:      sale.ID,
				ProductName: line.Name,
				Price:       line.Price,
				Qty:         line.Qty,
			}
			if err := s.saleRepo.CreateItem(tx, &item); err != nil {
				return err
			}
			sale.Items = append(sale.Items, item)

			// Unknown product ids are skipped; the sale line is still recorded
			found, err := s.productRepo.DecrementStock(tx, line.ID, line.Qty)
			if err != nil {
				return err
			}
			if found {
				changes = append(changes, stockChange{ProductID: line.ID, Qty: line.Qty})
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateDBError(err, ErrNotFound)
	}

	s.events.Publish(ws.Event{
		Type:   "sale_update",
		Action: "sale_created",
		Data: map[string]interface{}{
			"invoice_id":    sale.InvoiceID,
			"total":         sale.TotalAmount,
			"items":         len(sale.Items),
			"stock_changes": changes,
		},
		Message: fmt.Sprintf("Sale %s recorded for %s", sale.InvoiceID, sale.CustomerName),
	})

	return sale, nil
}

func (s *salesService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}
