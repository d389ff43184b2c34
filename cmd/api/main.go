package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/optica-erp/internal/application/inventory"
	"github.com/jhoicas/optica-erp/internal/application/sales"
	"github.com/jhoicas/optica-erp/internal/application/usecase"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
	"github.com/jhoicas/optica-erp/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/optica-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/optica-erp/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/optica-erp/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/optica-erp/internal/interfaces/http"
	"github.com/jhoicas/optica-erp/pkg/config"
	"github.com/jhoicas/optica-erp/pkg/logger"
)

// backend repositorios fuera de transacción más el ejecutor de transacciones del driver elegido.
type backend struct {
	repos    repository.TxRepositories
	txRunner inventory.TxRunner
	close    func()
}

func openBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos no sobreviven al reinicio")
		store := memory.NewStore()
		return &backend{repos: store.Repositories(), txRunner: store, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema de base de datos verificado")
	}
	return &backend{
		repos:    postgres.Repositories(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := openBackend(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer db.close()

	repos := db.repos
	registerMovementUC := inventory.NewRegisterMovementUseCase(db.txRunner, cfg.Sales.DefaultLocation, log.Component("inventory"))
	inventoryQueryUC := inventory.NewQueryUseCase(
		repos.Inventory, repos.Movements, repos.Products,
		infraxlsx.NewMovementExporter(), cfg.Sales.DefaultLocation,
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Inventory)
	salesUC := sales.NewUseCase(
		db.txRunner, repos.Sales, repos.Clients, repos.Products, repos.Payments,
		infrapdf.NewReceiptGenerator(),
		sales.Options{
			StoreName:       cfg.App.Name,
			DefaultLocation: cfg.Sales.DefaultLocation,
			RestockOnCancel: cfg.Sales.RestockOnCancel,
			NumberPrefix:    cfg.Sales.NumberPrefix,
			TSOPrefix:       cfg.Sales.TSOPrefix,
		},
		log.Component("sales"),
	)

	app := fiber.New(httpRouter.AppConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:         usecase.NewClientUseCase(repos.Clients),
		ProductUC:        usecase.NewProductUseCase(repos.Products),
		RegisterMovement: registerMovementUC,
		InventoryQuery:   inventoryQueryUC,
		Replenishment:    replenishmentUC,
		SalesUC:          salesUC,
		JWTSecret:        cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
