package models

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel

	Name          string          `gorm:"not null" json:"nome"`
	Description   string          `gorm:"not null" json:"descricao"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;index" json:"preco"`
	StockQuantity int             `gorm:"not null" json:"quantidadeEmEstoque"`

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
