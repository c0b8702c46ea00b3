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

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/order"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// storage agrupa el runner transaccional y los repos fuera de transacción de un backend.
type storage struct {
	txRunner interface {
		inventory.TxRunner
		order.OrderTxRunner
	}
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	orders    repository.OrderRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store := openStorage(ctx, cfg.DB, log)
	defer store.close()

	var publisher order.EventPublisher = order.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp, err := messaging.NewKafkaPublisher(cfg.Kafka, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Msg("publicador Kafka")
		}
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador Kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos de pedido hacia Kafka")
	}

	ledgerUC := inventory.NewLedgerUseCase(store.txRunner, store.products, store.movements)
	catalogUC := inventory.NewCatalogUseCase(store.txRunner, store.products)
	bulkUC := inventory.NewBulkImportUseCase(store.txRunner, ledgerUC)
	ordersLog := log.Component("orders")
	createOrderUC := order.NewCreateOrderUseCase(store.txRunner, ledgerUC, store.orders, publisher, ordersLog)
	statusUC := order.NewStatusUseCase(store.txRunner, ledgerUC, publisher, ordersLog)
	packingSlipUC := order.NewPackingSlipUseCase(createOrderUC, store.products, infrapdf.NewMarotoPackingSlipGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario Ledger API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado, archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:     catalogUC,
		Ledger:      ledgerUC,
		BulkImport:  bulkUC,
		Orders:      createOrderUC,
		OrderStatus: statusUC,
		PackingSlip: packingSlipUC,
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

// openStorage abre PostgreSQL (aplicando migraciones si AutoMigrate) o el store en memoria.
func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) storage {
	if cfg.Driver == config.DriverMemory {
		s := memory.NewStore()
		log.Warn().Msg("usando almacenamiento en memoria, los datos se pierden al reiniciar")
		return storage{
			txRunner:  s,
			products:  s.Products(),
			movements: s.Movements(),
			orders:    s.Orders(),
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		if len(applied) > 0 {
			log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		}
	}
	return storage{
		txRunner:  postgres.NewTxRunner(pool),
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		close:     pool.Close,
	}
}
