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

	"github.com/jhoicas/stock-insights/internal/application/alerts"
	"github.com/jhoicas/stock-insights/internal/application/availability"
	"github.com/jhoicas/stock-insights/internal/application/classification"
	"github.com/jhoicas/stock-insights/internal/application/integrity"
	"github.com/jhoicas/stock-insights/internal/application/inventory"
	"github.com/jhoicas/stock-insights/internal/application/purchasing"
	"github.com/jhoicas/stock-insights/internal/application/risk"
	"github.com/jhoicas/stock-insights/internal/application/sales"
	"github.com/jhoicas/stock-insights/internal/application/stock"
	"github.com/jhoicas/stock-insights/internal/application/supplier"
	"github.com/jhoicas/stock-insights/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-insights/internal/interfaces/http"
	"github.com/jhoicas/stock-insights/pkg/config"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	demand := sales.NewDemandEstimator(salesRepo)

	stockoutRiskUC := risk.NewStockoutRiskUsecase(productRepo, purchaseRepo, demand, log)
	pendingOrdersUC := risk.NewPendingOrdersUsecase(purchaseRepo, log)
	rupturesUC := stock.NewRuptureUsecase(salesRepo, movementRepo, log)
	slowMovingUC := stock.NewSlowMovingUsecase(productRepo, salesRepo, movementRepo, log)
	availabilityUC := availability.NewAvailabilityUsecase(productRepo, salesRepo, movementRepo, log)
	demandDropUC := availability.NewDemandDropUsecase(productRepo, salesRepo, movementRepo, log)
	suggestionsUC := purchasing.NewSuggestionsUsecase(productRepo, purchaseRepo, demand, log)
	abcUC := classification.NewABCUsecase(salesRepo, log)
	profitabilityUC := classification.NewProfitabilityUsecase(salesRepo, log)
	turnoverUC := classification.NewTurnoverUsecase(productRepo, salesRepo, purchaseRepo, movementRepo, log)
	discrepanciesUC := integrity.NewDiscrepancyUsecase(productRepo, movementRepo, log)
	lossesUC := integrity.NewExplicitLossesUsecase(movementRepo, log)
	scorerUC := supplier.NewScorerUsecase(supplierRepo, productRepo, purchaseRepo, salesRepo, log)
	topSellersUC := sales.NewTopSellersUsecase(salesRepo, log)
	registerMovementUC := inventory.NewRegisterMovementUsecase(txRunner, log)

	aggregatorUC := alerts.NewAggregatorUsecase(
		stockoutRiskUC, rupturesUC, slowMovingUC,
		discrepanciesUC, suggestionsUC, lossesUC,
		productRepo, salesRepo, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Insights API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockoutRisk:     stockoutRiskUC,
		PendingOrders:    pendingOrdersUC,
		Ruptures:         rupturesUC,
		SlowMoving:       slowMovingUC,
		Availability:     availabilityUC,
		DemandDrop:       demandDropUC,
		Suggestions:      suggestionsUC,
		ABC:              abcUC,
		Profitability:    profitabilityUC,
		Turnover:         turnoverUC,
		Discrepancies:    discrepanciesUC,
		ExplicitLosses:   lossesUC,
		SupplierScorer:   scorerUC,
		TopSellers:       topSellersUC,
		Aggregator:       aggregatorUC,
		RegisterMovement: registerMovementUC,
		Engine:           cfg.Engine,
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
