package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/metrics"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
)

var ErrEmptyOrder = errors.New("order needs at least one item")

const (
	OrderCreated = "pedido_criado"
	OrderUpdated = "pedido_atualizado"
	OrderDeleted = "pedido_removido"
)

type OrderEvent struct {
	Type    string             `json:"type"`
	OrderID uuid.UUID          `json:"pedidoId"`
	Status  models.OrderStatus `json:"status,omitempty"`
}

// OrderPublisher receives an event after every successful order write.
type OrderPublisher interface {
	Publish(event OrderEvent)
}

type OrderUpdate struct {
	Status models.OrderStatus
	Items  []OrderItemInput
}

type OrderService struct {
	orders    OrderRepository
	publisher OrderPublisher
	now       func() time.Time
}

func NewOrderService(orders OrderRepository, publisher OrderPublisher) *OrderService {
	return &OrderService{orders: orders, publisher: publisher, now: time.Now}
}

func (s *OrderService) Create(ctx context.Context, clientID uuid.UUID, inputs []OrderItemInput) (*models.Order, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyOrder
	}

	items, total := buildItems(inputs)

	order := &models.Order{
		ClientID:  clientID,
		Status:    models.StatusRecebido,
		Total:     total,
		OrderDate: s.now().UTC(),
		Items:     items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.publish(OrderCreated, order.ID, order.Status)

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// Update changes the status and, when items are given, replaces the whole item
// set and recomputes the total. An empty item list leaves the items alone.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, in OrderUpdate) (*models.Order, error) {
	changes := store.OrderChanges{Status: in.Status}

	if len(in.Items) > 0 {
		items, total := buildItems(in.Items)
		changes.Items = items
		changes.Total = &total
	}

	order, err := s.orders.Update(ctx, id, changes)

	if err != nil {
		return nil, err
	}

	s.publish(OrderUpdated, order.ID, order.Status)

	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(OrderDeleted, id, "")

	return nil
}

func (s *OrderService) publish(kind string, id uuid.UUID, status models.OrderStatus) {
	if s.publisher == nil {
		return
	}

	s.publisher.Publish(OrderEvent{Type: kind, OrderID: id, Status: status})
}
