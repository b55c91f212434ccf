package model

// LowStockThreshold is the stock level below which a product counts as low stock.
const LowStockThreshold = 5

type Product struct {
	BaseModel
	Name      string  `gorm:"type:varchar(100);not null" json:"name"`
	Category  string  `gorm:"type:varchar(50);not null" json:"category"`
	Price     float64 `gorm:"not null" json:"price"`
	Stock     int     `gorm:"default:0" json:"stock"` // no floor, checkout may push it negative
	ImagePath *string `gorm:"type:varchar(255)" json:"image_path,omitempty"`
}

// ProductResponse is the serialized form sent to the web client
type ProductResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Img      string  `json:"img"`
}

// ImageURL returns the public URL of the product image, or placeholder when none is stored.
func (p *Product) ImageURL(uploadPrefix, placeholder string) string {
	if p.ImagePath == nil || *p.ImagePath == "" {
		return placeholder
	}
	return uploadPrefix + "/" + *p.ImagePath
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse(uploadPrefix, placeholder string) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		Img:      p.ImageURL(uploadPrefix, placeholder),
	}
}
