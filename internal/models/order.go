package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusRecebido     OrderStatus = "RECEBIDO"
	StatusEmPreparacao OrderStatus = "EM_PREPARACAO"
	StatusEnviado      OrderStatus = "ENVIADO"
	StatusEntregue     OrderStatus = "ENTREGUE"
	StatusCancelado    OrderStatus = "CANCELADO"
)

var OrderStatuses = []OrderStatus{
	StatusRecebido,
	StatusEmPreparacao,
	StatusEnviado,
	StatusEntregue,
	StatusCancelado,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}

	return false
}

type Order struct {
	BaseModel

	ClientID  uuid.UUID       `gorm:"size:36;not null;index" json:"idCliente"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	OrderDate time.Time       `gorm:"not null;index" json:"dataPedido"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"itens"`
}

type OrderItem struct {
	BaseModel

	OrderID   uuid.UUID       `gorm:"size:36;not null;index" json:"idPedido"`
	ProductID uuid.UUID       `gorm:"size:36;not null;index" json:"idProduto"`
	Quantity  int             `gorm:"not null" json:"quantidade"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precoPorUnidade"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

// UnitsSold is the sum of item quantities.
func (o Order) UnitsSold() int {
	units := 0

	for _, item := range o.Items {
		units += item.Quantity
	}

	return units
}
