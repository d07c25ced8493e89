package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the dashboard and transaction exports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	exportService    portssvc.ExportService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, es portssvc.ExportService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		exportService:    es,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, exportService portssvc.ExportService) {
	h := newReportingHandler(reportingService, exportService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/dashboard", h.getDashboard)
		reportingGroup.GET("/export", h.exportTransactions)
	}
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Totals income and expense per reporting currency for an inclusive date range. Transactions without a known amount in a currency are excluded from that currency's totals and counted in excludedCount.
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Dashboard query", err)
		return
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondWithError(c, err, "generate dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}

// exportTransactions godoc
// @Summary Export transactions
// @Description Downloads the transactions in an inclusive date range as CSV or XLSX, with hub and reporting amounts rounded to 2 decimal places. Unknown amounts are written as "-".
// @Tags reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD), inclusive"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/export [get]
func (h *reportingHandler) exportTransactions(c *gin.Context) {
	var params dto.ExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Export query", err)
		return
	}
	format := portssvc.ExportCSV
	if params.Format != "" {
		format = portssvc.ExportFormat(params.Format)
	}

	// Buffer the file so a failure can still be reported as a JSON error.
	var buf bytes.Buffer
	if err := h.exportService.ExportTransactions(c.Request.Context(), params.From, params.To, format, &buf); err != nil {
		respondWithError(c, err, "export transactions")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.%s", params.From.Format("20060102"), params.To.Format("20060102"), format)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Export ready",
		slog.String("filename", filename),
		slog.Int("bytes", buf.Len()))
	middleware.SetAnalyticsProperty(c, "export_format", string(format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
