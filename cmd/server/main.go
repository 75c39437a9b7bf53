package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/damon-houk/inventory-tracker/internal/application/service"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/cache"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/db"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/handler"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/middleware"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
)

func main() {
	log := logger.NewJSONLogger(os.Stdout, logger.InfoLevel)
	log.Info("Starting inventory tracker", nil)

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(".", "data")
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{
			"path":  dbPath,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(dbPath)
	badgerOpts.Logger = nil // Disable Badger's default logger

	store, err := db.OpenBadgerInventoryStore(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"path":  dbPath,
			"error": err.Error(),
		})
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing database", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Shared dashboard cache, invalidated on every write
	dashCache := cache.NewDashboardCache()

	// Services
	inventoryService := service.NewInventoryService(store, dashCache, log)
	dashboardService := service.NewDashboardService(store, dashCache, log)

	// Handlers
	inventoryHandler := handler.NewInventoryHandler(inventoryService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	inventoryHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Server listening", map[string]interface{}{"port": port})
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
