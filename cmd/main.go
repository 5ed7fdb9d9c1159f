package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stocktrack/internal/caching"
	"stocktrack/internal/handlers"
	"stocktrack/internal/jobs"
	"stocktrack/internal/jobs/background"
	"stocktrack/internal/repositories"
	"stocktrack/internal/services"
)

const version = "1.0.0"

func main() {
	// Cache configuration: Redis when configured, otherwise in-process
	// noop.
	var cacheSvc caching.CacheService
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr != "" {
		redisPassword := os.Getenv("REDIS_PASSWORD")
		redisDB := 0
		if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
			if db, err := strconv.Atoi(redisDBStr); err == nil {
				redisDB = db
			}
		}
		cacheSvc = caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	} else {
		log.Println("REDIS_ADDR not set, running without stock cache")
		cacheSvc = caching.NewNoopCacheService()
	}

	// Upload storage: MinIO when configured, otherwise local disk served
	// under /static.
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	var fileStorage services.FileStorage
	var err error
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint != "" {
		minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
		if minioAccessKey == "" {
			minioAccessKey = "minioadmin" // Default for development
		}
		minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
		if minioSecretKey == "" {
			minioSecretKey = "minioadmin" // Default for development
		}
		minioBucket := os.Getenv("MINIO_BUCKET")
		if minioBucket == "" {
			minioBucket = "stocktrack-uploads"
		}
		useSSL := os.Getenv("MINIO_USE_SSL") == "true"

		fileStorage, err = services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
	} else {
		fileStorage, err = services.NewLocalStorage(uploadDir, "/static")
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
	}

	// Create the store and repositories. Every registry shares one store
	// so composite operations see and mutate them under a single lock.
	store := repositories.NewStore()
	stockRepo := repositories.NewStockRepo(store)
	locationRepo := repositories.NewLocationRepo(store)
	bomRepo := repositories.NewBOMRepo(store)
	logRepo := repositories.NewStockLogRepo(store)
	categoryRepo := repositories.NewCategoryRepo(store)

	// Create services
	stockSvc := services.NewStockService(store, stockRepo, locationRepo, bomRepo, logRepo, cacheSvc)
	locationSvc := services.NewLocationService(store, locationRepo, stockRepo, cacheSvc)
	bomSvc := services.NewBOMService(store, bomRepo, logRepo)
	categorySvc := services.NewCategoryService(store, categoryRepo)
	logSvc := services.NewStockLogService(store, logRepo)

	// Create handlers
	stockHandlers := handlers.NewStockHandlers(stockSvc, fileStorage)
	locationHandlers := handlers.NewLocationHandlers(locationSvc)
	bomHandlers := handlers.NewBOMHandlers(bomSvc)
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc)
	logHandlers := handlers.NewStockLogHandlers(logSvc)
	healthHandlers := handlers.NewHealthHandlers(cacheSvc)

	// Background low-stock alerts
	threshold := 0
	if t := os.Getenv("LOW_STOCK_THRESHOLD"); t != "" {
		if parsed, err := strconv.Atoi(t); err == nil {
			threshold = parsed
		}
	}
	alertSvc := jobs.NewStockAlertService(stockSvc, threshold)
	scheduler, err := background.NewJobScheduler(alertSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Stock routes
	e.GET("/stock", stockHandlers.ListStock)
	e.POST("/stock", stockHandlers.CreateStock)
	e.GET("/stock/low", stockHandlers.LowStock)
	e.GET("/stock/barcode/:code", stockHandlers.GetStockByBarcode)
	e.GET("/stock/:id", stockHandlers.GetStock)
	e.PUT("/stock/:id", stockHandlers.UpdateStock)
	e.DELETE("/stock/:id", stockHandlers.DeleteStock)
	e.POST("/stock/scrap", stockHandlers.ScrapStock)
	e.POST("/stock/transfer", stockHandlers.TransferStock)
	e.POST("/stock/adjust", stockHandlers.AdjustStock)
	e.POST("/stock/assemble", stockHandlers.AssembleStock)
	e.POST("/stock/:id/image", stockHandlers.UploadImage)
	e.POST("/stock/:id/file", stockHandlers.UploadFile)
	e.POST("/scan", stockHandlers.Scan)

	// Location routes
	e.GET("/locations", locationHandlers.ListLocations)
	e.POST("/locations", locationHandlers.CreateLocation)
	e.PUT("/locations/:id", locationHandlers.UpdateLocation)
	e.DELETE("/locations/:id", locationHandlers.DeleteLocation)

	// BOM routes
	e.GET("/boms", bomHandlers.ListBOMs)
	e.POST("/boms", bomHandlers.CreateBOM)
	e.PUT("/boms/:barcode", bomHandlers.UpdateBOM)
	e.DELETE("/boms/:barcode", bomHandlers.DeleteBOM)

	// Category routes
	e.GET("/categories", categoryHandlers.ListCategories)
	e.POST("/categories", categoryHandlers.CreateCategory)
	e.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	// Audit log
	e.GET("/stock_logs", logHandlers.ListStockLogs)

	// Serve uploaded images and files (local storage mode)
	if minioEndpoint == "" {
		e.Static("/static", uploadDir)
	}

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("stocktrack server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
