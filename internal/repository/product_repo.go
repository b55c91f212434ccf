package repository

import (
	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	DecrementStock(tx *gorm.DB, id uint, qty int) (bool, error)
	CountLowStock(threshold int) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("id ASC").Find(&products).Error
	return products, err
}

// FindByID returns gorm.ErrRecordNotFound when no row matches
func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update writes every column of an existing row. It returns gorm.ErrRecordNotFound when the
// row is gone, so a concurrent delete is never undone by an insert.
func (r *productRepo) Update(product *model.Product) error {
	res := r.db.Model(product).Select("*").Omit("created_at").Updates(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete returns gorm.ErrRecordNotFound when no row was removed
func (r *productRepo) Delete(id uint) error {
	res := r.db.Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi.
// It reports false when no product has that id.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uint, qty int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("stock < ?", threshold).Count(&count).Error
	return count, err
}
