package repository

import (
	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateSale(tx *gorm.DB, sale *model.Sale) error
	CreateItem(tx *gorm.DB, item *model.SaleItem) error
	FindAll() ([]model.Sale, error)
	FindTotals() ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// CreateSale inserts only the sale header; items are written one by one with CreateItem.
func (r *saleRepo) CreateSale(tx *gorm.DB, sale *model.Sale) error {
	return tx.Omit("Items").Create(sale).Error
}

func (r *saleRepo) CreateItem(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

// FindAll returns sales newest first, each with items in insertion order
func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_items.id ASC")
		}).
		Order("date_created DESC").
		Order("id DESC").
		Find(&sales).Error
	return sales, err
}

// FindTotals loads only what the stats aggregation needs
func (r *saleRepo) FindTotals() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Select("id", "total_amount", "date_created").Find(&sales).Error
	return sales, err
}
