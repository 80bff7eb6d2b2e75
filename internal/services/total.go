package services

import (
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total sums the item subtotals.
func Total(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero

	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	return total
}

// buildItems prices every line as quantity x unit price and returns the order total.
func buildItems(inputs []OrderItemInput) ([]models.OrderItem, decimal.Decimal) {
	items := make([]models.OrderItem, len(inputs))

	for i, in := range inputs {
		items[i] = models.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Subtotal:  in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		}
	}

	return items, Total(items)
}
