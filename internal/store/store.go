// Package store holds the gorm-backed repositories. Every repository is built
// from an explicitly passed *gorm.DB and honours the caller's context.
package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrReferenced = errors.New("record is referenced")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenced
	default:
		return err
	}
}

type ClientFilter struct {
	FullName string
	Active   *bool
	UserID   *uuid.UUID
}

type ProductFilter struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Available *bool
}

// OrderChanges describes one order update. Zero fields are left untouched;
// a non-empty Items replaces the whole item set.
type OrderChanges struct {
	Status models.OrderStatus
	Total  *decimal.Decimal
	Items  []models.OrderItem
}
