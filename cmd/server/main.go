package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza_pantry_backend/internal/config"
	"pizza_pantry_backend/internal/database"
	"pizza_pantry_backend/internal/repositories"
	"pizza_pantry_backend/internal/router"
	"pizza_pantry_backend/internal/services"
	"pizza_pantry_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		utils.LogError(err, "Invalid configuration")
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		utils.LogWarn("JWT_SECRET is not set, using the demo secret")
	}

	ctx := context.Background()

	// Initialize storage
	blobs, err := database.NewBlobStore(ctx, cfg)
	if err != nil {
		utils.LogError(err, "Failed to open blob store", map[string]interface{}{"driver": cfg.StorageDriver})
		log.Fatalf("Failed to open blob store: %v", err)
	}
	defer blobs.Close()

	// Initialize Services
	seed := services.DemoInventory()
	if !cfg.SeedDemoData {
		seed = nil
	}
	audit := services.NewAuditRecorder(repositories.NewAuditRepository(blobs))
	inventory := services.NewInventoryStore(repositories.NewInventoryRepository(blobs), audit, seed)
	if err := inventory.Init(ctx); err != nil {
		utils.LogError(err, "Failed to load inventory")
		log.Fatalf("Failed to load inventory: %v", err)
	}

	auth, err := services.NewAuthService(utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL), services.DemoAccounts())
	if err != nil {
		log.Fatalf("Failed to prepare demo accounts: %v", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	// Setup all application routes
	router.Setup(engine, router.Services{
		Inventory: inventory,
		Audit:     audit,
		Reports:   services.NewReportService(inventory),
		Transfer:  services.NewTransferService(),
		Auth:      auth,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "storage": cfg.StorageDriver})
		utils.LogInfo("Frontend should be configured to make API calls", map[string]interface{}{"url": "http://localhost:" + cfg.Port + "/api/v1"})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Handle Graceful Shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	utils.LogInfo("Shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}
	utils.LogInfo("Server stopped")
}
