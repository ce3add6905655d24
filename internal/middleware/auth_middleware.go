package middleware

import (
	"net/http"
	"strings"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextUserName  = "userName"
	ContextUserEmail = "userEmail"
)

// TokenParser turns a bearer token into the signed-in user.
type TokenParser interface {
	ParseToken(token string) (*models.User, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		user, err := tokens.ParseToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserName, user.Name)
		c.Set(ContextUserEmail, user.Email)

		c.Next()
	}
}

// CurrentUser reads the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return models.User{}, false
	}
	return models.User{ID: id, Name: c.GetString(ContextUserName), Email: c.GetString(ContextUserEmail)}, true
}
