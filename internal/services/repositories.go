package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/store"
)

// The repositories below are satisfied by the gorm stores in internal/store
// and by the in-memory fakes in internal/testutil.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter store.ClientFilter) ([]models.Client, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, changes store.OrderChanges) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context) ([]models.Report, error)
}
