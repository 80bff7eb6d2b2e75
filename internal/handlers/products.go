package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/validation"
)

const productNotFound = "Produto não encontrado"

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(ctx *gin.Context) {
	req := validation.Get[types.CreateProductRequest](ctx)

	product, err := h.products.Create(ctx.Request.Context(), services.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: *req.StockQuantity,
	})

	if err != nil {
		fail(ctx, apperror.Internal("Erro ao criar produto", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"produto": product})
}

func (h *ProductHandler) Get(ctx *gin.Context) {
	product, err := h.products.Get(ctx.Request.Context(), pathID(ctx))

	if err != nil {
		failLookup(ctx, err, productNotFound, "Erro ao buscar produto")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"produto": product})
}

func (h *ProductHandler) Update(ctx *gin.Context) {
	req := validation.Get[types.UpdateProductRequest](ctx)

	product, err := h.products.Update(ctx.Request.Context(), pathID(ctx), services.ProductChanges{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})

	if err != nil {
		failLookup(ctx, err, productNotFound, "Erro ao atualizar produto")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"produto": product})
}

func (h *ProductHandler) Delete(ctx *gin.Context) {
	err := h.products.Delete(ctx.Request.Context(), pathID(ctx))

	if errors.Is(err, store.ErrReferenced) {
		fail(ctx, apperror.Conflict("Produto possui pedidos vinculados"))
		return
	}

	if err != nil {
		failLookup(ctx, err, productNotFound, "Erro ao deletar produto")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProductHandler) List(ctx *gin.Context) {
	query := validation.Get[types.ProductQuery](ctx)

	products, err := h.products.List(ctx.Request.Context(), store.ProductFilter{
		MinPrice:  query.MinPrice,
		MaxPrice:  query.MaxPrice,
		Available: query.Available,
	})

	if err != nil {
		if errors.Is(err, services.ErrInvalidPriceRange) {
			fail(ctx, apperror.Validation("O preço mínimo não pode ser maior que o preço máximo"))
			return
		}
		fail(ctx, apperror.Internal("Erro ao listar produtos", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"produtos": products})
}
