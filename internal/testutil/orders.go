package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
)

type Orders struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order

	// FailUpdate, when set, is returned by Update before anything is written.
	FailUpdate error
}

func NewOrders() *Orders {
	return &Orders{orders: map[uuid.UUID]models.Order{}}
}

func cloneOrder(order models.Order) models.Order {
	order.Items = append([]models.OrderItem(nil), order.Items...)
	return order
}

func (r *Orders) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&order.BaseModel)
	for i := range order.Items {
		stamp(&order.Items[i].BaseModel)
		order.Items[i].OrderID = order.ID
	}

	r.orders[order.ID] = cloneOrder(*order)

	return nil
}

func (r *Orders) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	order = cloneOrder(order)
	return &order, nil
}

func (r *Orders) List(_ context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sorted(func(models.Order) bool { return true }), nil
}

func (r *Orders) ListBetween(_ context.Context, start, end time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sorted(func(order models.Order) bool {
		return !order.OrderDate.Before(start) && !order.OrderDate.After(end)
	}), nil
}

func (r *Orders) sorted(keep func(models.Order) bool) []models.Order {
	orders := []models.Order{}

	for _, order := range r.orders {
		if keep(order) {
			orders = append(orders, cloneOrder(order))
		}
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.Before(orders[j].OrderDate) })

	return orders
}

func (r *Orders) Update(_ context.Context, id uuid.UUID, changes store.OrderChanges) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if r.FailUpdate != nil {
		return nil, r.FailUpdate
	}

	order = cloneOrder(order)

	if changes.Status != "" {
		order.Status = changes.Status
	}

	if changes.Total != nil {
		order.Total = *changes.Total
	}

	if len(changes.Items) > 0 {
		items := make([]models.OrderItem, len(changes.Items))
		for i, item := range changes.Items {
			item.ID = uuid.Nil
			stamp(&item.BaseModel)
			item.OrderID = id
			items[i] = item
		}
		order.Items = items
	}

	order.UpdatedAt = time.Now()
	r.orders[id] = order

	updated := cloneOrder(order)
	return &updated, nil
}

func (r *Orders) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return store.ErrNotFound
	}

	delete(r.orders, id)

	return nil
}

type Reports struct {
	mu      sync.Mutex
	reports []models.Report

	// FailCreate, when set, is returned by Create.
	FailCreate error
}

func NewReports() *Reports {
	return &Reports{}
}

func (r *Reports) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return r.FailCreate
	}

	stamp(&report.BaseModel)
	r.reports = append(r.reports, *report)

	return nil
}

func (r *Reports) List(_ context.Context) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reports := make([]models.Report, 0, len(r.reports))
	for i := len(r.reports) - 1; i >= 0; i-- {
		reports = append(reports, r.reports[i])
	}

	return reports, nil
}
