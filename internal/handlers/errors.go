package handlers

import (
	"errors"
	"net/http"

	"pizza_pantry_backend/internal/middleware"
	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/internal/services"
	"pizza_pantry_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto the standard API error body.
func respondServiceError(c *gin.Context, err error, op string) {
	utils.LogError(err, op+": service error")
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		utils.RespondNotFound(c, "Inventory item not found.", err.Error())
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Quantity is out of range.", err.Error()))
	case errors.Is(err, services.ErrInvalidImport):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Import file could not be read.", err.Error()))
	case errors.Is(err, services.ErrStorage):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeStorageFailed, "Failed to save changes.", "Storage error"))
	default:
		utils.RespondInternal(c, "Request failed.")
	}
}

// currentActor returns the signed-in actor or responds 401.
func currentActor(c *gin.Context) (models.Actor, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return models.Actor{}, false
	}
	return user.Actor(), true
}
