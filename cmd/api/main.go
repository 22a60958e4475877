package main

import (
	"log"
	"os"
	"time"

	"github.com/dmcampos/frota-backend/internal/database"
	"github.com/dmcampos/frota-backend/internal/handlers"
	"github.com/dmcampos/frota-backend/internal/jobs"
	"github.com/dmcampos/frota-backend/internal/middleware"
	"github.com/dmcampos/frota-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Optional external extraction service; inference falls back to the local
	// parsers when it is not configured.
	extractor := services.NewExtractionClient()
	if extractor == nil {
		log.Println("Extraction service not configured, using local parsers only")
	}

	hub := services.NewHub()
	go hub.Run()

	expiryJob := jobs.NewExpiryAlertJob(db, hub, 12*time.Hour)
	expiryJob.Start()
	defer expiryJob.Stop()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.Use(middleware.RateLimit(120, 30))

	// Serve locally stored documents
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			drivers := protected.Group("/drivers")
			{
				drivers.GET("", handlers.GetDrivers(db))
				drivers.POST("", handlers.CreateDriver(db))
				drivers.GET("/:id", handlers.GetDriver(db))
				drivers.PUT("/:id", handlers.UpdateDriver(db))
				drivers.DELETE("/:id", handlers.DeleteDriver(db))
			}

			trucks := protected.Group("/trucks")
			{
				trucks.GET("", handlers.GetTrucks(db))
				trucks.POST("", handlers.CreateTruck(db))
				trucks.GET("/:id", handlers.GetTruck(db))
				trucks.PUT("/:id", handlers.UpdateTruck(db))
				trucks.DELETE("/:id", handlers.DeleteTruck(db))
				trucks.GET("/:id/documents", handlers.GetTruckDocuments(db))
				trucks.POST("/:id/documents", handlers.UploadDocument(db, extractor))
			}

			pranchas := protected.Group("/pranchas")
			{
				pranchas.GET("", handlers.GetPranchas(db))
				pranchas.POST("", handlers.CreatePrancha(db))
				pranchas.GET("/:id", handlers.GetPrancha(db))
				pranchas.PUT("/:id", handlers.UpdatePrancha(db))
				pranchas.DELETE("/:id", handlers.DeletePrancha(db))
			}

			trips := protected.Group("/trips")
			{
				trips.GET("", handlers.GetTrips(db))
				trips.POST("", handlers.CreateTrip(db))
				trips.GET("/:id", handlers.GetTrip(db))
				trips.PUT("/:id", handlers.UpdateTrip(db))
				trips.DELETE("/:id", handlers.DeleteTrip(db))
				trips.POST("/:id/finish", handlers.FinishTrip(db, hub))
			}

			documents := protected.Group("/documents")
			{
				documents.GET("/expiring", handlers.GetExpiringDocuments(db))
				documents.GET("/alerts", handlers.GetExpiryAlerts())
				documents.PUT("/:id/expiry", handlers.UpdateDocumentExpiry(db))
				documents.DELETE("/:id", handlers.DeleteDocument(db))
			}

			protected.GET("/dashboard/summary", handlers.GetDashboardSummary(db))

			exports := protected.Group("/exports")
			{
				exports.GET("/trips.csv", handlers.ExportTripsCSV(db))
				exports.GET("/trips.pdf", handlers.ExportTripsPDF(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
