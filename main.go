package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"nearme/api/database"
	"nearme/api/handlers"
	"nearme/api/middleware"
	"nearme/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	if err := database.EnsureSchema(dbClient.DB); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// --- Initialize Stores ---
	storeStore := store.NewStoreStore(dbClient.DB)
	productStore := store.NewProductStore(dbClient.DB)
	viewStore := store.NewViewStore(dbClient.DB)
	activityStore := store.NewActivityStore(dbClient.DB)
	statisticStore := store.NewStatisticStore(dbClient.DB)

	// --- Initialize Handlers ---
	storeHandlers := handlers.NewStoreHandlers(storeStore, productStore)
	productHandlers := handlers.NewProductHandlers(productStore)
	viewHandlers := handlers.NewViewHandlers(viewStore, storeStore)
	activityHandlers := handlers.NewActivityHandlers(activityStore, storeStore)
	statisticHandlers := handlers.NewStatisticHandlers(statisticStore, storeStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		stores := api.Group("/stores")
		{
			stores.GET("", storeHandlers.ListStores)
			stores.POST("", storeHandlers.CreateStore)
			stores.GET("/:nit", storeHandlers.GetStore)
			stores.PUT("/:nit", storeHandlers.UpdateStore)
			stores.DELETE("/:nit", storeHandlers.DeleteStore)
			stores.POST("/:nit/views", storeHandlers.RecordView)
			stores.GET("/:nit/views", storeHandlers.GetViews)
			stores.GET("/:nit/products", storeHandlers.GetStoreProducts)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandlers.ListProducts)
			products.POST("", productHandlers.CreateProduct)
			products.GET("/:id", productHandlers.GetProduct)
			products.PUT("/:id", productHandlers.UpdateProduct)
			products.PATCH("/:id/status", productHandlers.UpdateStatus)
			products.DELETE("/:id", productHandlers.DeleteProduct)
		}

		views := api.Group("/store-views")
		{
			views.GET("", viewHandlers.Info)
			views.POST("", viewHandlers.CreateView)
			views.GET("/stats/:store_id", viewHandlers.StoreStats)
			views.GET("/store/:store_id", viewHandlers.ListByStore)
			views.GET("/global-stats", viewHandlers.GlobalStats)
			views.GET("/unique-visitors/:store_id", viewHandlers.UniqueVisitors)
			views.GET("/session-analytics/:store_id", viewHandlers.SessionAnalytics)
		}

		activities := api.Group("/recent-activities")
		{
			activities.POST("", activityHandlers.CreateActivity)
			activities.GET("/store/:store_id", activityHandlers.ListByStore)
			activities.GET("/stats/:store_id", activityHandlers.StoreStats)
			activities.GET("/session/:session_id", activityHandlers.SessionActivities)
			activities.GET("/global-stats", activityHandlers.GlobalStats)
			activities.DELETE("/cleanup", activityHandlers.Cleanup)
		}

		statistics := api.Group("/statistics")
		{
			statistics.GET("", statisticHandlers.Info)
			statistics.POST("", statisticHandlers.UpsertStatistics)
			statistics.GET("/store/:store_id", statisticHandlers.ListByStore)
			statistics.GET("/store/:store_id/summary", statisticHandlers.StoreSummary)
			statistics.GET("/global", statisticHandlers.GlobalSummary)
			statistics.PUT("/store/:store_id/date/:date", statisticHandlers.UpdateByDate)
			statistics.DELETE("/store/:store_id/date/:date", statisticHandlers.DeleteByDate)
		}
	}

	// Catch-all for unmatched paths
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":   "error",
			"message":  "Endpoint not found",
			"endpoint": c.Request.RequestURI,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("NearMe backend starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("NearMe backend failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
