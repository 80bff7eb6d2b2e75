package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/apperror"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/validation"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate builds the CSV for ?periodo= and sends it as a download.
func (h *ReportHandler) Generate(ctx *gin.Context) {
	query := validation.Get[types.ReportQuery](ctx)

	report, err := h.reports.Generate(ctx.Request.Context(), query.Period, models.TriggerManual)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			fail(ctx, apperror.Validation("Período inválido"))
		case errors.Is(err, services.ErrNoSales):
			fail(ctx, apperror.NotFound("Nenhuma venda encontrada no período especificado"))
		default:
			fail(ctx, apperror.Internal("Erro ao gerar relatório", err))
		}
		return
	}

	ctx.FileAttachment(report.Path, report.FileName())
}

func (h *ReportHandler) History(ctx *gin.Context) {
	reports, err := h.reports.History(ctx.Request.Context())

	if err != nil {
		fail(ctx, apperror.Internal("Erro ao listar relatórios", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"relatorios": reports})
}
