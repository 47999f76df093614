package http

import (
	"github.com/gofiber/fiber/v2"

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
	"github.com/jhoicas/stock-insights/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockoutRisk     *risk.StockoutRiskUsecase
	PendingOrders    *risk.PendingOrdersUsecase
	Ruptures         *stock.RuptureUsecase
	SlowMoving       *stock.SlowMovingUsecase
	Availability     *availability.AvailabilityUsecase
	DemandDrop       *availability.DemandDropUsecase
	Suggestions      *purchasing.SuggestionsUsecase
	ABC              *classification.ABCUsecase
	Profitability    *classification.ProfitabilityUsecase
	Turnover         *classification.TurnoverUsecase
	Discrepancies    *integrity.DiscrepancyUsecase
	ExplicitLosses   *integrity.ExplicitLossesUsecase
	SupplierScorer   *supplier.ScorerUsecase
	TopSellers       *sales.TopSellersUsecase
	Aggregator       *alerts.AggregatorUsecase
	RegisterMovement *inventory.RegisterMovementUsecase
	Engine           config.EngineConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Analíticas de lectura
	analytics := api.Group("/analytics")

	riskHandler := NewRiskHandler(deps.StockoutRisk, deps.PendingOrders, deps.Engine)
	analytics.Get("/risk/stockouts", riskHandler.GetStockoutRisk)
	analytics.Get("/risk/pending-orders", riskHandler.GetPendingOrders)

	stockHandler := NewStockHandler(deps.Ruptures, deps.SlowMoving, deps.Engine)
	analytics.Get("/stock/ruptures", stockHandler.GetRuptures)
	analytics.Get("/stock/slow-moving", stockHandler.GetSlowMoving)

	availabilityHandler := NewAvailabilityHandler(deps.Availability, deps.DemandDrop, deps.Engine)
	analytics.Get("/availability", availabilityHandler.GetAvailability)
	analytics.Get("/availability/demand-drops", availabilityHandler.GetDemandDrops)

	classificationHandler := NewClassificationHandler(deps.ABC, deps.Profitability, deps.Turnover)
	classificationGroup := analytics.Group("/classification")
	classificationGroup.Get("/abc", classificationHandler.GetABC)
	classificationGroup.Get("/profitability", classificationHandler.GetProfitability)
	classificationGroup.Get("/profitability/summary", classificationHandler.GetProfitabilitySummary)
	classificationGroup.Get("/turnover", classificationHandler.GetTurnover)
	classificationGroup.Get("/age-distribution", classificationHandler.GetAgeDistribution)

	integrityHandler := NewIntegrityHandler(deps.Discrepancies, deps.ExplicitLosses, deps.Engine)
	analytics.Get("/integrity/discrepancies", integrityHandler.GetDiscrepancies)
	analytics.Get("/integrity/losses", integrityHandler.GetExplicitLosses)

	supplierHandler := NewSupplierHandler(deps.SupplierScorer)
	analytics.Get("/suppliers/scores", supplierHandler.GetScores)

	salesHandler := NewSalesHandler(deps.TopSellers)
	analytics.Get("/sales/top-sellers", salesHandler.GetTopSellers)

	// Compras
	purchasingGroup := api.Group("/purchasing")
	purchasingHandler := NewPurchasingHandler(deps.Suggestions, deps.Engine)
	purchasingGroup.Get("/suggestions", purchasingHandler.GetSuggestions)
	purchasingGroup.Get("/supplier-orders", purchasingHandler.GetSupplierOrders)

	// Dashboard consolidado
	alertsHandler := NewAlertsHandler(deps.Aggregator)
	api.Get("/alerts", alertsHandler.GetHealth)

	// Escritura del ledger
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
}
