package main

import (
	"log"
	"os"

	"study-abroad-api/config"
	"study-abroad-api/controllers"
	"study-abroad-api/middleware"
	"study-abroad-api/routes"
	"study-abroad-api/services"
	"study-abroad-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	config.LoadSettings()

	// Initialize database
	config.InitDB()

	// Redis is optional; the cache degrades to a no-op without it
	rdb := config.InitRedis()

	// Blob storage: Cloudinary when configured, local disk otherwise
	var store storage.Provider
	if os.Getenv("CLOUDINARY_URL") != "" {
		cld, err := storage.NewCloudinaryStore()
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
		store = cld
		log.Println("Storage: Cloudinary")
	} else {
		local, err := storage.NewLocalStore(config.App.UploadPath)
		if err != nil {
			log.Fatalf("Failed to initialize upload directory: %v", err)
		}
		store = local
		log.Printf("Storage: local disk at %s", config.App.UploadPath)
	}

	// Build the service graph
	cache := services.NewCache(rdb)
	fees := services.NewFeeService(config.App.DefaultApplicationFee)
	lifecycle := services.NewLifecycleService(fees, cache, config.App.AutoReviewOnAssign)
	documents := services.NewDocumentService(store, cache)
	payments := services.NewPaymentService(services.DefaultRates(), cache)
	controllers.Setup(store, cache, lifecycle, documents, payments, fees)

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Uploaded files are served directly when using local storage
	if local, ok := store.(*storage.LocalStore); ok {
		router.Static("/files", local.Root())
	}

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
