package repository

import (
	"testing"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductRepoCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	p := &model.Product{Name: "Widget", Category: "Tools", Price: 9.99, Stock: 10}
	require.NoError(t, repo.Create(p))
	require.NotZero(t, p.ID)

	found, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)
	assert.Nil(t, found.ImagePath)

	found.Stock = 3
	require.NoError(t, repo.Update(found))

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].Stock)

	require.NoError(t, repo.Delete(p.ID))
	_, err = repo.FindByID(p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(p.ID), gorm.ErrRecordNotFound)
}

func TestProductRepoUpdateDeletedRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	p := &model.Product{Name: "Widget", Category: "Tools", Price: 9.99, Stock: 10}
	require.NoError(t, repo.Create(p))
	stale, err := repo.FindByID(p.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(p.ID))

	stale.Stock = 1
	assert.ErrorIs(t, repo.Update(stale), gorm.ErrRecordNotFound)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all, "a stale update must not re-insert the row")
}

func TestProductRepoUpdateClearsFields(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	img := "a.png"
	p := &model.Product{Name: "Widget", Category: "Tools", Price: 9.99, Stock: 10, ImagePath: &img}
	require.NoError(t, repo.Create(p))

	p.Stock = 0
	p.Price = 0
	require.NoError(t, repo.Update(p))

	found, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Zero(t, found.Stock, "zero values are written")
	assert.Zero(t, found.Price)
	assert.Equal(t, "a.png", *found.ImagePath)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestProductRepoDecrementStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	p := &model.Product{Name: "Widget", Category: "Tools", Price: 1, Stock: 1}
	require.NoError(t, repo.Create(p))

	ok, err := repo.DecrementStock(db, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, found.Stock, "stock has no floor")

	ok, err = repo.DecrementStock(db, 999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepoCountLowStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)

	for _, stock := range []int{0, 4, 5, 10, -1} {
		require.NoError(t, repo.Create(&model.Product{Name: "P", Category: "C", Price: 1, Stock: stock}))
	}

	count, err := repo.CountLowStock(model.LowStockThreshold)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSaleRepoOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSaleRepo(db)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, inv := range []string{"aaaaaa", "bbbbbb", "cccccc"} {
		sale := &model.Sale{
			InvoiceID:     inv,
			CustomerName:  "Jo",
			CustomerPhone: "555",
			TotalAmount:   float64(i + 1),
			PaymentMethod: "cash",
			DateCreated:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.CreateSale(db, sale))
		for _, name := range []string{"first", "second"} {
			require.NoError(t, repo.CreateItem(db, &model.SaleItem{SaleID: sale.ID, ProductName: name, Price: 1, Qty: 1}))
		}
	}

	sales, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "cccccc", sales[0].InvoiceID)
	assert.Equal(t, "bbbbbb", sales[1].InvoiceID)
	assert.Equal(t, "aaaaaa", sales[2].InvoiceID)
	for _, s := range sales {
		require.Len(t, s.Items, 2)
		assert.Equal(t, "first", s.Items[0].ProductName)
		assert.Equal(t, "second", s.Items[1].ProductName)
	}

	totals, err := repo.FindTotals()
	require.NoError(t, err)
	assert.Len(t, totals, 3)
}

func TestSaleRepoDuplicateInvoice(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSaleRepo(db)

	newSale := func() *model.Sale {
		return &model.Sale{InvoiceID: "dup123", CustomerName: "Jo", CustomerPhone: "555", TotalAmount: 1, PaymentMethod: "cash", DateCreated: time.Now()}
	}
	require.NoError(t, repo.CreateSale(db, newSale()))
	assert.ErrorIs(t, repo.CreateSale(db, newSale()), gorm.ErrDuplicatedKey)
}

func TestUserRepoSeedAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)

	require.NoError(t, repo.SeedAdmin())
	require.NoError(t, repo.SeedAdmin(), "seeding twice is a no-op")

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	admin, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.CheckPassword("admin"))

	byID, err := repo.FindByID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Username)

	var other model.User
	require.NoError(t, other.SetPassword("s3cret"))
	require.NoError(t, repo.UpdatePassword(admin.ID, other.Password))
	admin, err = repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.CheckPassword("s3cret"))

	assert.ErrorIs(t, repo.UpdatePassword(999, other.Password), gorm.ErrRecordNotFound)
}
