package database

import (
	"log"

	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the users, products, sales and sale_items tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	)
	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database migrations completed")
	return nil
}
