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

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "LoginUser: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogWarn("LoginUser: rejected credentials", map[string]interface{}{"email": req.Email})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid email or password.", ""))
		} else {
			utils.LogError(err, "LoginUser: Error from authService.Login")
			utils.RespondInternal(c, "Failed to login.")
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	claimed, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}

	user, err := h.authService.GetUser(claimed.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondNotFound(c, "User profile not found.", err.Error())
			return
		}
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUser")
		utils.RespondInternal(c, "Failed to retrieve user profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutUser ends the session. Tokens are stateless, so the client simply
// discards its token.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		utils.LogInfo("User signed out", map[string]interface{}{"user_id": user.ID})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
