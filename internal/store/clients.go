package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"gorm.io/gorm"
)

type ClientStore struct {
	db *gorm.DB
}

func NewClientStore(db *gorm.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) Create(ctx context.Context, client *models.Client) error {
	return translate(s.db.WithContext(ctx).Create(client).Error)
}

func (s *ClientStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client

	if err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	return &client, nil
}

func (s *ClientStore) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*models.Client, error) {
	client, err := s.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(client).Updates(changes).Error; err != nil {
			return nil, translate(err)
		}
	}

	return s.FindByID(ctx, id)
}

func (s *ClientStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{})

	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *ClientStore) List(ctx context.Context, filter ClientFilter) ([]models.Client, error) {
	query := s.db.WithContext(ctx).Model(&models.Client{})

	if filter.FullName != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(filter.FullName)+"%")
	}

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	clients := []models.Client{}

	if err := query.Order("full_name").Find(&clients).Error; err != nil {
		return nil, translate(err)
	}

	return clients, nil
}
