package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/export"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/domain/report"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
)

// ReportService gera os relatórios mensais
type ReportService interface {
	Monthly(ctx context.Context, month, year int) (*report.Monthly, error)
}

// ReportController expõe os relatórios financeiros
type ReportController struct {
	service ReportService
	loc     *time.Location
	logger  logger.Logger
	now     func() time.Time
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(service ReportService, loc *time.Location, logger logger.Logger) *ReportController {
	return &ReportController{service: service, loc: loc, logger: logger, now: time.Now}
}

// period lê month e year da query; o padrão é o mês corrente
func (c *ReportController) period(ctx *gin.Context) (int, int, error) {
	now := c.now()
	if c.loc != nil {
		now = now.In(c.loc)
	}

	month, year := int(now.Month()), now.Year()
	if v := ctx.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, report.ErrInvalidMonth
		}
		month = m
	}
	if v := ctx.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, report.ErrInvalidYear
		}
		year = y
	}
	return month, year, nil
}

// Monthly retorna o relatório do mês
// @Summary Relatório mensal
// @Description Receita, HPP, despesas operacionais, lucros, margens, ticket médio, produtos mais vendidos e valor do estoque
// @Tags reports
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param month query int false "Mês (1-12)"
// @Param year query int false "Ano"
// @Success 200 {object} report.Monthly
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/monthly [get]
func (c *ReportController) Monthly(ctx *gin.Context) {
	month, year, err := c.period(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "período inválido")
		return
	}

	r, err := c.service.Monthly(ctx, month, year)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao gerar relatório")
		return
	}

	ctx.JSON(http.StatusOK, r)
}

// Export baixa o relatório do mês em planilha
// @Summary Exportar relatório mensal
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Param month query int false "Mês (1-12)"
// @Param year query int false "Ano"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/monthly/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	month, year, err := c.period(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, "período inválido")
		return
	}

	r, err := c.service.Monthly(ctx, month, year)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao gerar relatório")
		return
	}

	buf, err := export.MonthlyReport(r)
	if err != nil {
		respondError(ctx, c.logger, err, "erro ao gerar planilha")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.MonthlyFilename(r)))
	ctx.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
