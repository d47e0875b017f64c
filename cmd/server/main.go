package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "equiprent-backend/internal/api/http"
	"equiprent-backend/internal/config"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/repository/memory"
	"equiprent-backend/internal/repository/postgres"
	"equiprent-backend/internal/service"
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
	logger.Info("Starting EquipRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Rental configuration", "branches", cfg.Rental.Branches, "store_type", cfg.Rental.StoreType)

	// Initialize Repositories
	var (
		catRepo   repository.CategoryRepository
		invRepo   repository.InventoryRepository
		bookRepo  repository.BookingRepository
		maintRepo repository.MaintenanceRepository
	)

	switch cfg.Rental.StoreType {
	case "memory":
		logger.Info("Using in-memory store")
		repos := memory.NewRepositories(memory.NewStore())
		catRepo = repos.CategoryRepository
		invRepo = repos.InventoryRepository
		bookRepo = repos.BookingRepository
		maintRepo = repos.MaintenanceRepository
	default:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Test database connection
		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		store := postgres.NewStore(db)
		catRepo = store.CategoryRepository
		invRepo = store.InventoryRepository
		bookRepo = store.BookingRepository
		maintRepo = store.MaintenanceRepository
	}

	branches := [2]string{cfg.Rental.Branches[0], cfg.Rental.Branches[1]}

	// Initialize Change Notifications
	broadcaster := service.NewBroadcaster()

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	pricingSvc := service.NewPricingService(catRepo, cfg.Rental.DepositPercentage, broadcaster)
	availabilitySvc := service.NewAvailabilityService(invRepo, bookRepo, maintRepo, catRepo, branches)
	inventorySvc := service.NewInventoryService(invRepo, bookRepo, catRepo, branches, broadcaster)
	bookingSvc := service.NewBookingService(
		invRepo,
		bookRepo,
		maintRepo,
		catRepo,
		availabilitySvc,
		pricingSvc,
		emailSvc,
		broadcaster,
	)

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(availabilitySvc, pricingSvc, inventorySvc, bookingSvc, broadcaster)
	router := httpapi.NewRouter(handlers)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
