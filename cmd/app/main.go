package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/allergenrepo"
	"fulfillment/internal/adapters/out/postgres/allocationrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/salesorderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := getConfig()

	logger := newLogger(config.AppEnv)
	defer func() {
		_ = logger.Sync()
	}()

	db, err := openDatabase(config)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if err = migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(config, db)

	undoHandler, err := root.CreateUndoAllocationCommandHandler()
	if err != nil {
		logger.Fatal("failed to build undo handler", zap.Error(err))
	}

	server := httpin.NewServer(httpin.Handlers{
		PlanAllocation:  root.CreatePlanAllocationQueryHandler(),
		GetShipment:     root.CreateGetShipmentQueryHandler(),
		CheckSeparation: root.CreateCheckSeparationQueryHandler(),

		CommitAllocation:   root.CreateCommitAllocationCommandHandler(),
		OverrideAllocation: root.CreateOverrideAllocationCommandHandler(),
		UndoAllocation:     undoHandler,
		ReleaseAllocations: root.CreateReleaseAllocationsCommandHandler(),

		CreateShipment:   root.CreateCreateShipmentCommandHandler(),
		AddBox:           root.CreateAddBoxCommandHandler(),
		UpdateBox:        root.CreateUpdateBoxCommandHandler(),
		SetBoxSSCC:       root.CreateSetBoxSSCCCommandHandler(),
		AddContent:       root.CreateAddContentCommandHandler(),
		CompletePacking:  root.CreateCompletePackingCommandHandler(),
		ManifestShipment: root.CreateManifestShipmentCommandHandler(),
		MarkShipped:      root.CreateMarkShippedCommandHandler(),
		MarkDelivered:    root.CreateMarkDeliveredCommandHandler(),
	})

	jobManager := jobs.NewJobManager(
		root.CreateSweepReservationsCommandHandler(),
		config.SweepSchedule,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpin.NewRequestValidator()

	metrics := httpin.NewMetrics(prometheus.DefaultRegisterer)
	e.Use(httpin.RequestLogger(logger), metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server.RegisterRoutes(e, httpin.AuthMiddleware([]byte(config.JWTSecret)))

	go func() {
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); serveErr != nil {
			logger.Info("http server stopped", zap.Error(serveErr))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func getConfig() cmd.Config {
	// Missing .env is fine in containerized deployments where the
	// environment comes from the orchestrator.
	_ = godotenv.Load(".env")

	return cmd.Config{
		AppEnv:   envOr("APP_ENV", "production"),
		HTTPPort: envOr("HTTP_PORT", "8080"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "fulfillment"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		JWTSecret: envOr("JWT_SECRET", ""),

		MaxBoxWeightKg: envOr("MAX_BOX_WEIGHT_KG", "25"),
		MinBoxDimCm:    envOr("MIN_BOX_DIM_CM", "10"),
		MaxBoxDimCm:    envOr("MAX_BOX_DIM_CM", "200"),

		ExpiryWarningDays:    envIntOr("EXPIRY_WARNING_DAYS", 7),
		AllocationUndoWindow: envDurationOr("ALLOCATION_UNDO_WINDOW", 5*time.Minute),
		SweepSchedule:        envOr("SWEEP_SCHEDULE", "0 * * * * *"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func newLogger(appEnv string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if appEnv == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&salesorderrepo.SalesOrderDTO{},
		&salesorderrepo.SalesOrderLineDTO{},
		&inventoryrepo.InventoryUnitDTO{},
		&allocationrepo.AllocationDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentBoxDTO{},
		&shipmentrepo.ShipmentBoxContentDTO{},
		&allergenrepo.ProductAllergenDTO{},
		&allergenrepo.CustomerRestrictionDTO{},
	)
	if err != nil {
		return err
	}

	return shipmentrepo.EnsureLiveShipmentIndex(db)
}
