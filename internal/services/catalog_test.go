package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/lojinha-dev/lojinha/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, svc *ProductService, prices ...string) {
	t.Helper()

	for i, price := range prices {
		_, err := svc.Create(context.Background(), ProductInput{
			Name:          "Produto " + price,
			Description:   "descrição",
			Price:         decimal.RequireFromString(price),
			StockQuantity: i,
		})
		require.NoError(t, err)
	}
}

func TestProductListPriceRange(t *testing.T) {
	svc := NewProductService(testutil.NewProducts())
	seedProducts(t, svc, "5.00", "10.00", "15.50", "20.00", "25.00")

	lo := decimal.NewFromInt(10)
	hi := decimal.NewFromInt(20)

	products, err := svc.List(context.Background(), store.ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, products, 3)

	for _, p := range products {
		assert.True(t, p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi), p.Price.String())
	}
}

func TestProductListRejectsInvertedRange(t *testing.T) {
	svc := NewProductService(testutil.NewProducts())

	lo := decimal.NewFromInt(30)
	hi := decimal.NewFromInt(20)

	_, err := svc.List(context.Background(), store.ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	assert.ErrorIs(t, err, ErrInvalidPriceRange)
}

func TestProductListAvailability(t *testing.T) {
	svc := NewProductService(testutil.NewProducts())
	seedProducts(t, svc, "1.00", "2.00", "3.00")

	inStock := true
	products, err := svc.List(context.Background(), store.ProductFilter{Available: &inStock})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	outOfStock := false
	products, err = svc.List(context.Background(), store.ProductFilter{Available: &outOfStock})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 0, products[0].StockQuantity)
}

func TestProductPartialUpdate(t *testing.T) {
	svc := NewProductService(testutil.NewProducts())
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{Name: "Caneca", Description: "branca", Price: decimal.NewFromInt(20), StockQuantity: 4})
	require.NoError(t, err)

	price := decimal.RequireFromString("24.90")
	updated, err := svc.Update(ctx, product.ID, ProductChanges{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Caneca", updated.Name)
	assert.True(t, updated.Price.Equal(price))

	_, err = svc.Update(ctx, uuid.New(), ProductChanges{Price: &price})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClientListFilters(t *testing.T) {
	svc := NewClientService(testutil.NewClients())
	ctx := context.Background()
	owner := uuid.New()

	for _, in := range []ClientInput{
		{FullName: "Ana Souza", Contact: "1", Address: "Rua A", Active: true, UserID: owner},
		{FullName: "Mariana Lima", Contact: "2", Address: "Rua B", Active: false, UserID: owner},
		{FullName: "Carlos Dias", Contact: "3", Address: "Rua C", Active: true, UserID: uuid.New()},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	clients, err := svc.List(ctx, store.ClientFilter{FullName: "ANA"})
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	active := false
	clients, err = svc.List(ctx, store.ClientFilter{FullName: "ana", Active: &active})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Mariana Lima", clients[0].FullName)

	clients, err = svc.List(ctx, store.ClientFilter{})
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	clients, err = svc.List(ctx, store.ClientFilter{UserID: &owner})
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestClientDeleteMissing(t *testing.T) {
	svc := NewClientService(testutil.NewClients())

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
