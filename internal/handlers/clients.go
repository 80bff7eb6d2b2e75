package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/store"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/utils"
	"github.com/lojinha-dev/lojinha/internal/validation"
)

const clientNotFound = "Cliente não encontrado"

type ClientHandler struct {
	clients *services.ClientService
}

func NewClientHandler(clients *services.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Create(ctx *gin.Context) {
	req := validation.Get[types.CreateClientRequest](ctx)

	client, err := h.clients.Create(ctx.Request.Context(), services.ClientInput{
		FullName: req.FullName,
		Contact:  req.Contact,
		Address:  req.Address,
		Active:   *req.Active,
		UserID:   uuid.MustParse(req.UserID),
	})

	if err != nil {
		fail(ctx, apperror.Internal("Erro ao criar cliente", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"cliente": client})
}

// Get returns the client. A CLIENTE caller only sees clients linked to its own user.
func (h *ClientHandler) Get(ctx *gin.Context) {
	client, err := h.clients.Get(ctx.Request.Context(), pathID(ctx))

	if err != nil {
		failLookup(ctx, err, clientNotFound, "Erro ao buscar cliente")
		return
	}

	if !utils.IsAdmin(ctx) {
		userID, err := utils.GetPrincipalID(ctx)
		if err != nil || client.UserID != userID {
			fail(ctx, apperror.NotFound(clientNotFound))
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"cliente": client})
}

func (h *ClientHandler) Update(ctx *gin.Context) {
	req := validation.Get[types.UpdateClientRequest](ctx)

	client, err := h.clients.Update(ctx.Request.Context(), pathID(ctx), services.ClientChanges{
		FullName: req.FullName,
		Contact:  req.Contact,
		Address:  req.Address,
		Active:   req.Active,
	})

	if err != nil {
		failLookup(ctx, err, clientNotFound, "Erro ao atualizar cliente")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"cliente": client})
}

func (h *ClientHandler) Delete(ctx *gin.Context) {
	if err := h.clients.Delete(ctx.Request.Context(), pathID(ctx)); err != nil {
		failLookup(ctx, err, clientNotFound, "Erro ao deletar cliente")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ClientHandler) List(ctx *gin.Context) {
	query := validation.Get[types.ClientQuery](ctx)

	filter := store.ClientFilter{FullName: query.FullName, Active: query.Active}

	if !utils.IsAdmin(ctx) {
		userID, err := utils.GetPrincipalID(ctx)
		if err != nil {
			fail(ctx, apperror.Unauthorized("Usuário não autenticado"))
			return
		}
		filter.UserID = &userID
	}

	clients, err := h.clients.List(ctx.Request.Context(), filter)

	if err != nil {
		fail(ctx, apperror.Internal("Erro ao listar clientes", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"clientes": clients})
}
