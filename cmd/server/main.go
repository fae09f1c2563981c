package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentmarket-backend/internal/api/http"
	"rentmarket-backend/internal/config"
	"rentmarket-backend/internal/geo"
	"rentmarket-backend/internal/jobs"
	"rentmarket-backend/internal/logger"
	mongorepo "rentmarket-backend/internal/repository/mongo"
	"rentmarket-backend/internal/scheduler"
	"rentmarket-backend/internal/search"
	"rentmarket-backend/internal/search/elasticsearch"
	"rentmarket-backend/internal/search/memory"
	"rentmarket-backend/internal/security"
	"rentmarket-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentmarket Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Mongo configuration", "database", cfg.Mongo.Database)
	logger.Info("Search configuration", "type", cfg.Elasticsearch.Type, "index", cfg.Elasticsearch.Index)

	ctx := context.Background()

	// Initialize primary store
	store, err := mongorepo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Error("Failed to connect to mongodb", "error", err)
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("Failed to disconnect from mongodb", "error", err)
		}
	}()
	logger.Info("MongoDB connection established")

	// Initialize search index
	var index search.ProductIndex
	if cfg.Elasticsearch.Type == "memory" {
		logger.Info("Using in-memory search index")
		index = memory.New()
	} else {
		esEngine, err := elasticsearch.New(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index, logger.WithService("search"))
		if err != nil {
			logger.Error("Failed to initialize elasticsearch", "error", err)
			log.Fatalf("Failed to initialize elasticsearch: %v", err)
		}
		index = esEngine
	}

	// Initialize geocoder
	resolver := geo.NewOSMResolver()

	// Initialize security
	validator := security.NewTokenValidator(cfg.JWT.Secret)

	// Initialize services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	productSvc := service.NewProductService(
		store.ProductRepository,
		store.RentRequestRepository,
		store.UserRepository,
		index,
		resolver,
		emailSvc,
	)
	rentRequestSvc := service.NewRentRequestService(store.RentRequestRepository, store.ProductRepository)
	userSvc := service.NewUserService(store.UserRepository)

	// Initialize scheduled jobs
	jobRunner := jobs.NewJobRunner(store.ProductRepository, index, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(productSvc, rentRequestSvc, userSvc, validator)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
