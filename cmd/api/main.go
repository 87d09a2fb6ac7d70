package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/memory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/postgres"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/seed"
	httpRouter "github.com/sushantkumaryadav912/Inventory-Manager/internal/interfaces/http"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/config"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/telemetry"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetría")
	}

	var (
		txRunner    inventory.TxRunner
		levelRepo   repository.InventoryLevelRepository
		movements   repository.InventoryMovementRepository
		healthCheck func(context.Context) error
		sink        seed.Sink
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore(cfg.Ledger.TxTimeout)
		txRunner = store
		levelRepo = store.InventoryLevels()
		movements = store.Movements()
		sink = store.CatalogSink()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("esquema")
			}
			log.Info().Msg("esquema aplicado")
		}
		txRunner = postgres.NewTxRunner(pool, postgres.TxOptionsFromConfig(cfg.DB, cfg.Ledger), log)
		levelRepo = postgres.NewInventoryLevelRepository(pool)
		movements = postgres.NewInventoryMovementRepository(pool)
		sink = postgres.NewCatalogRepository(pool)
		healthCheck = pool.Ping
	}

	if cfg.Store.SeedCatalog != "" {
		cat, err := seed.Load(cfg.Store.SeedCatalog)
		if err != nil {
			log.Fatal().Err(err).Msg("catálogo inicial")
		}
		sum, err := seed.Apply(ctx, cat, sink)
		if err != nil {
			log.Fatal().Err(err).Msg("siembra del catálogo")
		}
		log.Info().Str("shop_id", cat.ShopID).Int("products", sum.Products).Msg("catálogo sembrado")
	}

	ledgerUC := inventory.NewLedgerUseCase(txRunner, log)
	queryUC := inventory.NewInventoryQueryUseCase(levelRepo, movements, inventory.QueryConfig{
		HistoryDefaultLimit: cfg.Ledger.HistoryDefaultLimit,
		HistoryMaxLimit:     cfg.Ledger.HistoryMaxLimit,
		LowStockThreshold:   cfg.Ledger.LowStockThreshold,
	})
	replenishmentUC := inventory.NewReplenishmentUseCase(levelRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Manager API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Queries:       queryUC,
		Replenishment: replenishmentUC,
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
		HealthCheck:   healthCheck,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
