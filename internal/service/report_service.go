package service

import (
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	GetStats() (*Stats, error)
}

// Stats is the dashboard summary
type Stats struct {
	Today    float64 `json:"today"`
	Month    float64 `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bills    int     `json:"bills"`
	LowStock int64   `json:"lowStock"`
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	loc         *time.Location
	now         func() time.Time
}

// NewReportService compares calendar days and months in loc.
func NewReportService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &reportService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *reportService) GetStats() (*Stats, error) {
	sales, err := s.saleRepo.FindTotals()
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	year, month, day := now.Date()

	today, monthly, revenue := decimal.Zero, decimal.Zero, decimal.Zero
	for _, sale := range sales {
		amount := decimal.NewFromFloat(sale.TotalAmount)
		revenue = revenue.Add(amount)

		y, m, d := sale.DateCreated.In(s.loc).Date()
		if y == year && m == month {
			monthly = monthly.Add(amount)
			if d == day {
				today = today.Add(amount)
			}
		}
	}

	lowStock, err := s.productRepo.CountLowStock(model.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Today:    today.InexactFloat64(),
		Month:    monthly.InexactFloat64(),
		Revenue:  revenue.InexactFloat64(),
		Bills:    len(sales),
		LowStock: lowStock,
	}, nil
}
