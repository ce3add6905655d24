package handlers

import (
	"fmt"
	"net/http"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/services"
	"pizza_pantry_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuditHandler serves the audit trail page.
type AuditHandler struct {
	audit *services.AuditRecorder
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit *services.AuditRecorder) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GetAuditLog handles GET /audit?search=&action=.
func (h *AuditHandler) GetAuditLog(c *gin.Context) {
	var query models.AuditQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if query.Action == "all" {
		query.Action = ""
	}
	if query.Action != "" && !query.Action.Valid() {
		utils.RespondValidationFailed(c, fmt.Sprintf("unknown action %q", query.Action))
		return
	}
	c.JSON(http.StatusOK, h.audit.Search(c.Request.Context(), query))
}

// ClearAuditLog handles DELETE /audit.
func (h *AuditHandler) ClearAuditLog(c *gin.Context) {
	if err := h.audit.Clear(c.Request.Context()); err != nil {
		respondServiceError(c, err, "ClearAuditLog")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Audit log cleared"})
}
