package router

import (
	"pizza_pantry_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes sets up the session routes for signed-in users.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupItemRoutes sets up the inventory item routes.
func SetupItemRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	itemRoutes := authenticatedGroup.Group("/items")
	{
		itemRoutes.GET("", inventoryHandler.ListItems)
		itemRoutes.POST("", inventoryHandler.CreateItem)
		itemRoutes.GET("/categories", inventoryHandler.GetCategories)
		itemRoutes.GET("/export", inventoryHandler.ExportItems)
		itemRoutes.POST("/import", inventoryHandler.ImportItems)
		itemRoutes.POST("/bulk-delete", inventoryHandler.BulkDelete)
		itemRoutes.GET("/:id", inventoryHandler.GetItem)
		itemRoutes.PUT("/:id", inventoryHandler.UpdateItem)
		itemRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
		itemRoutes.POST("/:id/adjust", inventoryHandler.AdjustQuantity)
		itemRoutes.GET("/:id/history", inventoryHandler.GetItemHistory)
	}
}

// SetupAuditRoutes sets up the audit trail routes.
func SetupAuditRoutes(authenticatedGroup *gin.RouterGroup, auditHandler *handlers.AuditHandler) {
	auditRoutes := authenticatedGroup.Group("/audit")
	{
		auditRoutes.GET("", auditHandler.GetAuditLog)
		auditRoutes.DELETE("", auditHandler.ClearAuditLog)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardSummary)
		dashboardRoutes.GET("/low-stock", reportHandler.GetLowStockAlerts)
	}
}
