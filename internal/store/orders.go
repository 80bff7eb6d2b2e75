package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"gorm.io/gorm"
)

type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts the order and its items in one transaction.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	return translate(s.db.WithContext(ctx).Create(order).Error)
}

func (s *OrderStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order

	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

func (s *OrderStore) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}

	if err := s.db.WithContext(ctx).Preload("Items").Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, translate(err)
	}

	return orders, nil
}

// ListBetween returns orders whose order date falls in [start, end].
func (s *OrderStore) ListBetween(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	orders := []models.Order{}

	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_date >= ? AND order_date <= ?", start, end).
		Order("order_date").
		Find(&orders).Error

	if err != nil {
		return nil, translate(err)
	}

	return orders, nil
}

// Update applies changes atomically: either every write lands or none does.
func (s *OrderStore) Update(ctx context.Context, id uuid.UUID, changes OrderChanges) (*models.Order, error) {
	var updated models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Order

		if err := tx.Select("id").First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		if changes.Status != "" {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", changes.Status).Error; err != nil {
				return fmt.Errorf("update status: %w", err)
			}
		}

		if changes.Total != nil {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Update("total", *changes.Total).Error; err != nil {
				return fmt.Errorf("update total: %w", err)
			}
		}

		if len(changes.Items) > 0 {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return fmt.Errorf("delete items: %w", err)
			}

			items := make([]models.OrderItem, len(changes.Items))
			for i, item := range changes.Items {
				item.ID = uuid.Nil
				item.OrderID = id
				items[i] = item
			}

			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("insert items: %w", err)
			}
		}

		return tx.Preload("Items").First(&updated, "id = ?", id).Error
	})

	if err != nil {
		return nil, translate(err)
	}

	return &updated, nil
}

func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})

	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
