package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"gorm.io/gorm"
)

type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product

	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	return &product, nil
}

func (s *ProductStore) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Product, error) {
	product, err := s.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(product).Updates(changes).Error; err != nil {
			return nil, translate(err)
		}
	}

	return s.FindByID(ctx, id)
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})

	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *ProductStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if filter.Available != nil {
		if *filter.Available {
			query = query.Where("stock_quantity > 0")
		} else {
			query = query.Where("stock_quantity = 0")
		}
	}

	products := []models.Product{}

	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, translate(err)
	}

	return products, nil
}
