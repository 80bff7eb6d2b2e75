package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/shopspring/decimal"
)

type Products struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
}

func NewProducts() *Products {
	return &Products{products: map[uuid.UUID]models.Product{}}
}

func (r *Products) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&product.BaseModel)
	r.products[product.ID] = *product

	return nil
}

func (r *Products) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	return &product, nil
}

func (r *Products) Update(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	for column, value := range changes {
		switch column {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(decimal.Decimal)
		case "stock_quantity":
			product.StockQuantity = value.(int)
		}
	}

	product.UpdatedAt = time.Now()
	r.products[id] = product

	return &product, nil
}

func (r *Products) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return store.ErrNotFound
	}

	delete(r.products, id)

	return nil
}

func (r *Products) List(_ context.Context, filter store.ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := []models.Product{}

	for _, product := range r.products {
		if filter.MinPrice != nil && product.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && product.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.Available != nil && (product.StockQuantity > 0) != *filter.Available {
			continue
		}
		products = append(products, product)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })

	return products, nil
}
