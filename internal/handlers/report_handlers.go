package handlers

import (
	"net/http"
	"strconv"

	"pizza_pantry_backend/internal/services"
	"pizza_pantry_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard.
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetDashboardSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetLowStockAlerts handles GET /dashboard/low-stock?limit=n. limit=0 lists every low item.
func (h *ReportHandler) GetLowStockAlerts(c *gin.Context) {
	limit := services.DefaultLowStockAlerts
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondValidationFailed(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	alerts, err := h.reports.LowStock(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "GetLowStockAlerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}
