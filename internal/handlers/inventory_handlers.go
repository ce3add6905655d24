package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/services"
	"pizza_pantry_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// maxImportSize bounds uploaded import files.
const maxImportSize = 5 << 20

// InventoryHandler serves the item endpoints.
type InventoryHandler struct {
	store    *services.InventoryStore
	audit    *services.AuditRecorder
	transfer *services.TransferService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(store *services.InventoryStore, audit *services.AuditRecorder, transfer *services.TransferService) *InventoryHandler {
	return &InventoryHandler{store: store, audit: audit, transfer: transfer}
}

func validateItemInput(in models.ItemInput) string {
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return "costPrice must be 0 or greater"
	}
	if utils.IsEmpty(in.Name) {
		return "name must not be blank"
	}
	return ""
}

// ListItems handles GET /items with search, filter and sort query parameters.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var filter models.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	switch filter.Status {
	case "", models.StockStatusAll, models.StockStatusInStock, models.StockStatusLowStock, models.StockStatusOutOfStock:
	default:
		utils.RespondValidationFailed(c, fmt.Sprintf("unknown status %q", filter.Status))
		return
	}
	switch filter.SortBy {
	case "", models.SortByName, models.SortByCategory, models.SortByQuantity, models.SortByUpdatedAt:
	default:
		utils.RespondValidationFailed(c, fmt.Sprintf("unknown sort_by %q", filter.SortBy))
		return
	}

	items, err := h.store.ListItems(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "ListItems")
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateItem handles POST /items.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if msg := validateItemInput(input); msg != "" {
		utils.RespondValidationFailed(c, msg)
		return
	}

	item, err := h.store.AddItem(c.Request.Context(), actor, input)
	if err != nil {
		respondServiceError(c, err, "CreateItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /items/:id.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.store.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /items/:id. Every mutable field is replaced.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if msg := validateItemInput(input); msg != "" {
		utils.RespondValidationFailed(c, msg)
		return
	}

	item, err := h.store.EditItem(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, "UpdateItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	item, err := h.store.DeleteItem(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "DeleteItem")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully", "item": item})
}

// AdjustQuantity handles POST /items/:id/adjust.
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		utils.RespondValidationFailed(c, "reason is required")
		return
	}

	item, err := h.store.AdjustQuantity(c.Request.Context(), actor, c.Param("id"), req.Adjustment, reason)
	if err != nil {
		respondServiceError(c, err, "AdjustQuantity")
		return
	}
	c.JSON(http.StatusOK, item)
}

// BulkDelete handles POST /items/bulk-delete.
func (h *InventoryHandler) BulkDelete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	result, err := h.store.BulkDelete(c.Request.Context(), actor, req.IDs)
	if err != nil {
		respondServiceError(c, err, "BulkDelete")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportItems handles POST /items/import. The file may be sent as the
// multipart field "file" or as the raw request body.
func (h *InventoryHandler) ImportItems(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	data, err := readImportPayload(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	parsed, err := h.transfer.Import(data)
	if err != nil {
		respondServiceError(c, err, "ImportItems")
		return
	}
	imported, err := h.store.ImportItems(c.Request.Context(), actor, parsed)
	if err != nil {
		respondServiceError(c, err, "ImportItems")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": len(imported), "items": imported})
}

func readImportPayload(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("file field is required: %w", err)
		}
		if fh.Size > maxImportSize {
			return nil, fmt.Errorf("file exceeds %d bytes", maxImportSize)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImportSize {
		return nil, fmt.Errorf("body exceeds %d bytes", maxImportSize)
	}
	return data, nil
}

// ExportItems handles GET /items/export?format=csv|json.
func (h *InventoryHandler) ExportItems(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "json" {
		utils.RespondValidationFailed(c, fmt.Sprintf("unknown format %q", format))
		return
	}

	items, err := h.store.Items(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ExportItems")
		return
	}

	var (
		body        []byte
		contentType string
	)
	if format == "json" {
		body, err = h.transfer.ExportJSON(items)
		contentType = "application/json"
	} else {
		body, err = h.transfer.ExportCSV(items)
		contentType = "text/csv"
	}
	if err != nil {
		respondServiceError(c, err, "ExportItems")
		return
	}

	filename := fmt.Sprintf("pizza-pantry-inventory-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// GetCategories handles GET /items/categories.
func (h *InventoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.store.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetCategories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetItemHistory handles GET /items/:id/history. History outlives the item,
// so unknown ids return an empty list rather than 404.
func (h *InventoryHandler) GetItemHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.audit.GetForItem(c.Request.Context(), c.Param("id")))
}
