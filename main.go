package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodorder/configs"
	"foodorder/events"
	"foodorder/middlewares"
	"foodorder/repository"
	"foodorder/routes"
	"foodorder/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	// DB
	db, err := configs.ConnectionDB(cfg.DBSource, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(context.Background(), db, cfg, logger); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	// Events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	}
	defer publisher.Close()

	// Repositories & services
	restRepo := repository.NewRestaurantRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	favRepo := repository.NewFavouriteRepository(db)

	catalog := services.NewCatalogService(restRepo, foodRepo, logger)
	carts := services.NewCartService(db, cartRepo, catalog, logger)
	dispatch := services.StaticDispatcher{PartnerID: cfg.DeliveryPartnerID}
	orders := services.NewOrderService(db, orderRepo, cartRepo, catalog, dispatch, publisher, logger)
	favourites := services.NewFavouriteService(favRepo, orders, logger)

	// HTTP
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.Logger(logger))
	router.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(router, routes.Deps{
		JWTSecret:  cfg.JWTSecret,
		Catalog:    catalog,
		Carts:      carts,
		Orders:     orders,
		Favourites: favourites,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
