package types

import (
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"tipo" binding:"required,role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type CreateClientRequest struct {
	FullName string `json:"nomeCompleto" binding:"required"`
	Contact  string `json:"contato" binding:"required"`
	Address  string `json:"endereco" binding:"required"`
	Active   *bool  `json:"status" binding:"required"`
	UserID   string `json:"usuarioId" binding:"required,uuid"`
}

type UpdateClientRequest struct {
	FullName *string `json:"nomeCompleto" binding:"omitnil,min=1"`
	Contact  *string `json:"contato" binding:"omitnil,min=1"`
	Address  *string `json:"endereco" binding:"omitnil,min=1"`
	Active   *bool   `json:"status"`
}

type ClientQuery struct {
	FullName string `form:"nomeCompleto"`
	Active   *bool  `form:"status"`
}

type CreateProductRequest struct {
	Name          string           `json:"nome" binding:"required"`
	Description   string           `json:"descricao" binding:"required"`
	Price         *decimal.Decimal `json:"preco" binding:"required,gt=0"`
	StockQuantity *int             `json:"quantidadeEmEstoque" binding:"required,gte=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"nome" binding:"omitnil,min=1"`
	Description   *string          `json:"descricao"`
	Price         *decimal.Decimal `json:"preco" binding:"omitnil,gt=0"`
	StockQuantity *int             `json:"quantidadeEmEstoque" binding:"omitnil,gte=0"`
}

type ProductQuery struct {
	MinPrice  *decimal.Decimal `form:"precoMin" binding:"omitnil,gte=0"`
	MaxPrice  *decimal.Decimal `form:"precoMax" binding:"omitnil,gte=0"`
	Available *bool            `form:"disponibilidade"`
}

// OrderItemRequest prices a line. A client-sent subtotal is ignored and
// recomputed as quantity x unit price.
type OrderItemRequest struct {
	ProductID string           `json:"idProduto" binding:"required,uuid"`
	Quantity  int              `json:"quantidade" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"precoPorUnidade" binding:"required,gte=0"`
}

type CreateOrderRequest struct {
	ClientID string             `json:"idCliente" binding:"required,uuid"`
	Items    []OrderItemRequest `json:"itens" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"omitempty,orderstatus"`
	Items  []OrderItemRequest `json:"itens" binding:"omitempty,dive"`
}

type ReportQuery struct {
	Period string `form:"periodo" binding:"required,periodo"`
}
