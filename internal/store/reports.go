package store

import (
	"context"

	"github.com/lojinha-dev/lojinha/internal/models"
	"gorm.io/gorm"
)

type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Create(ctx context.Context, report *models.Report) error {
	return translate(s.db.WithContext(ctx).Create(report).Error)
}

func (s *ReportStore) List(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}

	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, translate(err)
	}

	return reports, nil
}
