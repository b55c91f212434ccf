package service

import (
	"testing"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type salesFixture struct {
	db       *gorm.DB
	sales    *salesService
	products repository.ProductRepository
	events   *testutil.Events
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	db := testutil.NewDB(t)
	products := repository.NewProductRepo(db)
	events := &testutil.Events{}
	svc := NewSalesService(repository.NewSaleRepo(db), products, db, events).(*salesService)
	return &salesFixture{db: db, sales: svc, products: products, events: events}
}

func (f *salesFixture) product(t *testing.T, name string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Category: "Tools", Price: 9.99, Stock: stock}
	require.NoError(t, f.products.Create(p))
	return p
}

func (f *salesFixture) stock(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.products.FindByID(id)
	require.NoError(t, err)
	return p.Stock
}

func (f *salesFixture) count(t *testing.T, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(value).Count(&n).Error)
	return n
}

func checkoutRequest(items ...CheckoutItem) *CheckoutRequest {
	return &CheckoutRequest{
		CustomerName:  "Jo",
		CustomerPhone: "555",
		Total:         ptr(31.47),
		PaymentMethod: "cash",
		Items:         items,
	}
}

func TestCheckoutDecrementsStock(t *testing.T) {
	f := newSalesFixture(t)
	widget := f.product(t, "Widget", 10)

	sale, err := f.sales.Checkout(checkoutRequest(CheckoutItem{ID: widget.ID, Name: "Widget", Price: 9.99, Qty: 3}))
	require.NoError(t, err)

	assert.Len(t, sale.InvoiceID, 6)
	assert.Equal(t, 31.47, sale.TotalAmount)
	assert.InDelta(t, 29.9714, sale.Subtotal(), 1e-3)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Qty)
	assert.Equal(t, 7, f.stock(t, widget.ID))
	assert.Equal(t, []string{"sale_created"}, f.events.Actions())
}

func TestCheckoutSkipsUnknownProducts(t *testing.T) {
	f := newSalesFixture(t)
	p1 := f.product(t, "Widget", 10)

	sale, err := f.sales.Checkout(checkoutRequest(
		CheckoutItem{ID: p1.ID, Name: "Widget", Price: 9.99, Qty: 2},
		CheckoutItem{ID: 999, Name: "Ghost", Price: 1, Qty: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, 8, f.stock(t, p1.ID))
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Widget", sale.Items[0].ProductName)
	assert.Equal(t, "Ghost", sale.Items[1].ProductName)
	assert.Equal(t, int64(2), f.count(t, &model.SaleItem{}))
}

func TestCheckoutAllowsNegativeStock(t *testing.T) {
	f := newSalesFixture(t)
	p := f.product(t, "Widget", 1)

	_, err := f.sales.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Name: "Widget", Price: 1, Qty: 4}))
	require.NoError(t, err)
	assert.Equal(t, -3, f.stock(t, p.ID))
}

func TestCheckoutIsAtomic(t *testing.T) {
	f := newSalesFixture(t)
	p := f.product(t, "Widget", 10)

	// The first line is written and decremented before the second fails validation.
	_, err := f.sales.Checkout(checkoutRequest(
		CheckoutItem{ID: p.ID, Name: "Widget", Price: 9.99, Qty: 2},
		CheckoutItem{ID: p.ID, Name: "", Price: 9.99, Qty: 1},
	))
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, f.count(t, &model.Sale{}))
	assert.Zero(t, f.count(t, &model.SaleItem{}))
	assert.Equal(t, 10, f.stock(t, p.ID))
	assert.Empty(t, f.events.Actions())
}

func TestCheckoutRejectsNonPositiveQty(t *testing.T) {
	f := newSalesFixture(t)
	widget := f.product(t, "Widget", 10)

	for _, qty := range []int{0, -2} {
		_, err := f.sales.Checkout(checkoutRequest(CheckoutItem{ID: widget.ID, Name: "Widget", Price: 9.99, Qty: qty}))
		assert.ErrorIs(t, err, ErrValidation, "qty %d", qty)
	}
	assert.Equal(t, 10, f.stock(t, widget.ID), "stock is never increased by a checkout")
	assert.Zero(t, f.count(t, &model.Sale{}))
}

func TestCheckoutValidatesHeader(t *testing.T) {
	f := newSalesFixture(t)

	missingTotal := checkoutRequest()
	missingTotal.Total = nil
	missingName := checkoutRequest()
	missingName.CustomerName = ""
	noItems := checkoutRequest()
	noItems.Items = nil

	for _, req := range []*CheckoutRequest{missingTotal, missingName, noItems} {
		_, err := f.sales.Checkout(req)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Zero(t, f.count(t, &model.Sale{}))
}

func TestCheckoutInvoiceCollision(t *testing.T) {
	f := newSalesFixture(t)
	f.sales.newInvoiceID = func() string { return "abc123" }
	p := f.product(t, "Widget", 10)

	_, err := f.sales.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Name: "Widget", Price: 1, Qty: 1}))
	require.NoError(t, err)

	_, err = f.sales.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Name: "Widget", Price: 1, Qty: 1}))
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, int64(1), f.count(t, &model.Sale{}))
	assert.Equal(t, 9, f.stock(t, p.ID))
}

func TestGetAllSalesNewestFirst(t *testing.T) {
	f := newSalesFixture(t)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.sales.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	var invoices []string
	for i := 0; i < 3; i++ {
		sale, err := f.sales.Checkout(checkoutRequest(CheckoutItem{Name: "Loose item", Price: 1, Qty: 1}))
		require.NoError(t, err)
		invoices = append(invoices, sale.InvoiceID)
	}

	sales, err := f.sales.GetAllSales()
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, invoices[2], sales[0].InvoiceID)
	assert.Equal(t, invoices[1], sales[1].InvoiceID)
	assert.Equal(t, invoices[0], sales[2].InvoiceID)
	assert.True(t, sales[0].DateCreated.After(sales[1].DateCreated))
}

func TestDeletedProductKeepsSaleHistory(t *testing.T) {
	f := newSalesFixture(t)
	p := f.product(t, "Widget", 10)

	_, err := f.sales.Checkout(checkoutRequest(CheckoutItem{ID: p.ID, Name: "Widget", Price: 9.99, Qty: 1}))
	require.NoError(t, err)
	require.NoError(t, f.products.Delete(p.ID))

	sales, err := f.sales.GetAllSales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Len(t, sales[0].Items, 1)
	assert.Equal(t, "Widget", sales[0].Items[0].ProductName)
	assert.Equal(t, 9.99, sales[0].Items[0].Price)
}
