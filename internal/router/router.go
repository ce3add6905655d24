package router

import (
	"net/http"

	"pizza_pantry_backend/internal/handlers"
	"pizza_pantry_backend/internal/middleware"
	"pizza_pantry_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Inventory *services.InventoryStore
	Audit     *services.AuditRecorder
	Reports   *services.ReportService
	Transfer  *services.TransferService
	Auth      services.AuthService
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svc Services) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(svc.Auth)
	inventoryHandler := handlers.NewInventoryHandler(svc.Inventory, svc.Audit, svc.Transfer)
	auditHandler := handlers.NewAuditHandler(svc.Audit)
	reportHandler := handlers.NewReportHandler(svc.Reports)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	// Setup public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Setup authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(svc.Auth))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupItemRoutes(authenticated, inventoryHandler)
		SetupAuditRoutes(authenticated, auditHandler)
		SetupDashboardRoutes(authenticated, reportHandler)
	}
}
