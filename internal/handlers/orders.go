package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/validation"
)

const orderNotFound = "Pedido não encontrado"

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func itemInputs(items []types.OrderItemRequest) []services.OrderItemInput {
	inputs := make([]services.OrderItemInput, len(items))

	for i, item := range items {
		inputs[i] = services.OrderItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
			UnitPrice: *item.UnitPrice,
		}
	}

	return inputs
}

func (h *OrderHandler) Create(ctx *gin.Context) {
	req := validation.Get[types.CreateOrderRequest](ctx)

	order, err := h.orders.Create(ctx.Request.Context(), uuid.MustParse(req.ClientID), itemInputs(req.Items))

	if err != nil {
		fail(ctx, apperror.Internal("Erro ao criar pedido", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"pedido": order})
}

func (h *OrderHandler) List(ctx *gin.Context) {
	orders, err := h.orders.List(ctx.Request.Context())

	if err != nil {
		fail(ctx, apperror.Internal("Erro ao listar pedidos", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"pedidos": orders})
}

func (h *OrderHandler) Get(ctx *gin.Context) {
	order, err := h.orders.Get(ctx.Request.Context(), pathID(ctx))

	if err != nil {
		failLookup(ctx, err, orderNotFound, "Erro ao buscar pedido")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"pedido": order})
}

func (h *OrderHandler) Update(ctx *gin.Context) {
	req := validation.Get[types.UpdateOrderRequest](ctx)

	order, err := h.orders.Update(ctx.Request.Context(), pathID(ctx), services.OrderUpdate{
		Status: req.Status,
		Items:  itemInputs(req.Items),
	})

	if err != nil {
		failLookup(ctx, err, orderNotFound, "Erro ao atualizar pedido")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"pedido": order})
}

func (h *OrderHandler) Delete(ctx *gin.Context) {
	if err := h.orders.Delete(ctx.Request.Context(), pathID(ctx)); err != nil {
		failLookup(ctx, err, orderNotFound, "Erro ao deletar pedido")
		return
	}

	ctx.Status(http.StatusNoContent)
}
