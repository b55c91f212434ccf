package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxDivisor backs the pre-tax subtotal out of a tax-inclusive total (flat 5%).
var TaxDivisor = decimal.NewFromFloat(1.05)

type Sale struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	InvoiceID     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_id"`
	CustomerName  string     `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerPhone string     `gorm:"type:varchar(20);not null" json:"customer_phone"`
	TotalAmount   float64    `gorm:"not null" json:"total_amount"`
	PaymentMethod string     `gorm:"type:varchar(50);not null" json:"payment_method"`
	DateCreated   time.Time  `gorm:"not null;index" json:"date_created"`
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// SaleItem copies product name and price at checkout time. It never references Product.
type SaleItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `gorm:"not null;index" json:"sale_id"`
	ProductName string  `gorm:"type:varchar(100);not null" json:"product_name"`
	Price       float64 `gorm:"not null" json:"price"`
	Qty         int     `gorm:"not null" json:"qty"`
}

// Subtotal is the total with the 5% tax removed.
func (s *Sale) Subtotal() float64 {
	return decimal.NewFromFloat(s.TotalAmount).Div(TaxDivisor).InexactFloat64()
}

// SaleResponse is the serialized form sent to the web client
type SaleResponse struct {
	ID            uint               `json:"id"`
	InvoiceID     string             `json:"invoiceId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	Date          string             `json:"date"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      float64            `json:"subtotal"`
}

// SaleItemResponse always carries id 0; the web client keys receipt lines by name.
type SaleItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
	ID    int     `json:"id"`
}

// ToResponse converts Sale to SaleResponse
func (s *Sale) ToResponse() SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			Name:  item.ProductName,
			Price: item.Price,
			Qty:   item.Qty,
		}
	}

	return SaleResponse{
		ID:            s.ID,
		InvoiceID:     s.InvoiceID,
		CustomerName:  s.CustomerName,
		CustomerPhone: s.CustomerPhone,
		Total:         s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		Date:          s.DateCreated.Format(time.RFC3339),
		Items:         items,
		Subtotal:      s.Subtotal(),
	}
}
