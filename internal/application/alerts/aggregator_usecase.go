package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/domain/repository"
	"github.com/jhoicas/stock-insights/pkg/logger"
)

// Parámetros fijos con los que el dashboard consulta cada detector.
const (
	defaultForecastDays    = 30
	defaultHistoryDays     = 30
	defaultRiskThreshold   = 7
	defaultRuptureLookback = 14
	defaultSlowMovingDays  = 60
	defaultLossPeriodDays  = 30

	maxCriticalPerSource = 5
	maxWarningsPerSource = 3
)

var defaultTolerancePct = decimal.NewFromInt(5)

// Detectores que alimentan el dashboard. El agregador no contiene lógica de
// detección propia: solo mezcla, pondera y resume.
type (
	// RiskDetector pronóstico de quiebres de stock.
	RiskDetector interface {
		Forecast(ctx context.Context, forecastDays, historyDays, minDaysThreshold int) (*dto.StockoutRiskReport, error)
	}
	// RuptureDetector productos ya agotados con demanda.
	RuptureDetector interface {
		DetectRuptures(ctx context.Context, lookbackDays int) (*dto.RuptureReport, error)
	}
	// SlowMovingDetector capital inmovilizado.
	SlowMovingDetector interface {
		Detect(ctx context.Context, thresholdDays int) (*dto.SlowMovingReport, error)
	}
	// DiscrepancyDetector reconciliación del ledger.
	DiscrepancyDetector interface {
		Detect(ctx context.Context, tolerancePct decimal.Decimal) (*dto.DiscrepancyReport, error)
	}
	// PurchaseAdvisor sugerencias de compra.
	PurchaseAdvisor interface {
		Suggest(ctx context.Context, forecastDays, historyDays int, minOrderValue decimal.Decimal) (*dto.PurchaseSuggestionsReport, error)
	}
	// LossReporter pérdidas explícitas del ledger.
	LossReporter interface {
		List(ctx context.Context, periodDays int) (*dto.ExplicitLossesReport, error)
	}
)

// AggregatorUsecase consolida todos los detectores en un único reporte de
// salud del inventario.
type AggregatorUsecase struct {
	risk          RiskDetector
	ruptures      RuptureDetector
	slowMoving    SlowMovingDetector
	discrepancies DiscrepancyDetector
	purchases     PurchaseAdvisor
	losses        LossReporter
	products      repository.ProductRepository
	sales         repository.SalesRepository
	log           *logger.Logger
	printer       *message.Printer
}

// NewAggregatorUsecase construye el dashboard de alertas.
func NewAggregatorUsecase(
	risk RiskDetector,
	ruptures RuptureDetector,
	slowMoving SlowMovingDetector,
	discrepancies DiscrepancyDetector,
	purchases PurchaseAdvisor,
	losses LossReporter,
	products repository.ProductRepository,
	sales repository.SalesRepository,
	log *logger.Logger,
) *AggregatorUsecase {
	return &AggregatorUsecase{
		risk:          risk,
		ruptures:      ruptures,
		slowMoving:    slowMoving,
		discrepancies: discrepancies,
		purchases:     purchases,
		losses:        losses,
		products:      products,
		sales:         sales,
		log:           log,
		printer:       message.NewPrinter(language.Spanish),
	}
}

// detectorResults salida cruda de los detectores, consultados en paralelo.
type detectorResults struct {
	risk          *dto.StockoutRiskReport
	ruptures      *dto.RuptureReport
	slowMoving    *dto.SlowMovingReport
	discrepancies *dto.DiscrepancyReport
	suggestions   *dto.PurchaseSuggestionsReport
	losses        *dto.ExplicitLossesReport
}

// Health genera el reporte consolidado. Cada alerta crítica resta 15 puntos
// de salud y cada advertencia 5, con piso en cero. El resultado siempre trae
// las cuatro claves, vacías cuando no hay hallazgos.
func (u *AggregatorUsecase) Health(ctx context.Context) (*dto.HealthReport, error) {
	results, err := u.collect(ctx)
	if err != nil {
		return nil, err
	}

	critical := make([]dto.Alert, 0)
	warnings := make([]dto.Alert, 0)
	recommendations := make([]dto.Alert, 0)

	// ── Críticas: quiebre inminente, quiebre consumado, ledger roto ─────────

	riskCount := 0
	for _, r := range results.risk.Products {
		if r.RiskLevel != "CRITICAL" && r.RiskLevel != "HIGH" {
			continue
		}
		if riskCount >= maxCriticalPerSource {
			break
		}
		riskCount++
		critical = append(critical, dto.Alert{
			Type:      "stockout_risk",
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Message: u.printer.Sprintf("%s se agota en %v días; venta en riesgo $%.2f. %s",
				r.Name, r.DaysUntilStockout, r.PotentialLostRevenue.InexactFloat64(), r.Recommendation),
		})
	}

	for i, r := range results.ruptures.Products {
		if i >= maxCriticalPerSource {
			break
		}
		critical = append(critical, dto.Alert{
			Type:      "stock_rupture",
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Message: u.printer.Sprintf("%s agotado con demanda activa (%v unidades en %d ventas); pérdida estimada $%.2f",
				r.Name, r.QuantitySold, r.SalesCount, r.EstimatedLostRevenue.InexactFloat64()),
		})
	}

	for i, d := range results.discrepancies.Items {
		if i >= maxWarningsPerSource {
			break
		}
		critical = append(critical, dto.Alert{
			Type:      "ledger_discrepancy",
			ProductID: d.ProductID,
			SKU:       d.SKU,
			Message: u.printer.Sprintf("%s: el ledger espera %v y hay %v (%v%% de desviación, $%.2f en juego)",
				d.Name, d.ExpectedStock, d.ActualStock, d.DiscrepancyPct, d.LossValue.InexactFloat64()),
		})
	}

	// ── Advertencias: cobertura corta, lenta rotación, pérdidas del mes ─────

	mediumCount := 0
	for _, r := range results.risk.Products {
		if r.RiskLevel != "MEDIUM" {
			continue
		}
		if mediumCount >= maxWarningsPerSource {
			break
		}
		mediumCount++
		warnings = append(warnings, dto.Alert{
			Type:      "low_coverage",
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Message: u.printer.Sprintf("%s tiene %v días de cobertura y las órdenes en camino no alcanzan",
				r.Name, r.DaysUntilStockout),
		})
	}

	urgentCount := 0
	for _, s := range results.slowMoving.Products {
		if s.Action != "URGENT" {
			continue
		}
		if urgentCount >= maxWarningsPerSource {
			break
		}
		urgentCount++
		warnings = append(warnings, dto.Alert{
			Type:      "slow_moving",
			ProductID: s.ProductID,
			SKU:       s.SKU,
			Message: u.printer.Sprintf("%s lleva demasiado sin vender; $%.2f inmovilizados",
				s.Name, s.StockValue.InexactFloat64()),
		})
	}

	if results.losses.TotalLossValue.IsPositive() {
		warnings = append(warnings, dto.Alert{
			Type: "explicit_losses",
			Message: u.printer.Sprintf("Pérdidas reconocidas por $%.2f en los últimos %d días (%d movimientos)",
				results.losses.TotalLossValue.InexactFloat64(), defaultLossPeriodDays, len(results.losses.Losses)),
		})
	}

	// ── Recomendaciones: compras prioritarias ───────────────────────────────

	highCount := 0
	for _, s := range results.suggestions.Suggestions {
		if s.Priority != "HIGH" {
			continue
		}
		if highCount >= maxCriticalPerSource {
			break
		}
		highCount++
		recommendations = append(recommendations, dto.Alert{
			Type:      "purchase_suggestion",
			ProductID: s.ProductID,
			SKU:       s.SKU,
			Message: u.printer.Sprintf("Comprar %v unidades de %s ($%.2f) para cubrir los próximos %d días",
				s.SuggestedQuantity, s.Name, s.OrderValue.InexactFloat64(), defaultForecastDays),
		})
	}

	summary, metrics, err := u.summarize(ctx, results, len(critical), len(warnings))
	if err != nil {
		return nil, err
	}

	score := 100 - 15*len(critical) - 5*len(warnings)
	if score < 0 {
		score = 0
	}

	return &dto.HealthReport{
		HealthScore:     score,
		Status:          healthStatus(score),
		Summary:         summary,
		CriticalAlerts:  critical,
		Warnings:        warnings,
		Recommendations: recommendations,
		Metrics:         metrics,
		GeneratedAt:     time.Now(),
	}, nil
}

// collect consulta los seis detectores en paralelo. Cualquier falla se
// propaga: un dashboard a medias diría "sin problemas" donde no pudo mirar.
func (u *AggregatorUsecase) collect(ctx context.Context) (*detectorResults, error) {
	results := &detectorResults{}
	errs := make(chan error, 6)

	go func() {
		r, err := u.risk.Forecast(ctx, defaultForecastDays, defaultHistoryDays, defaultRiskThreshold)
		results.risk = r
		errs <- wrap("riesgo de quiebre", err)
	}()
	go func() {
		r, err := u.ruptures.DetectRuptures(ctx, defaultRuptureLookback)
		results.ruptures = r
		errs <- wrap("quiebres de stock", err)
	}()
	go func() {
		r, err := u.slowMoving.Detect(ctx, defaultSlowMovingDays)
		results.slowMoving = r
		errs <- wrap("lenta rotación", err)
	}()
	go func() {
		r, err := u.discrepancies.Detect(ctx, defaultTolerancePct)
		results.discrepancies = r
		errs <- wrap("discrepancias", err)
	}()
	go func() {
		r, err := u.purchases.Suggest(ctx, defaultForecastDays, defaultHistoryDays, decimal.Zero)
		results.suggestions = r
		errs <- wrap("sugerencias de compra", err)
	}()
	go func() {
		r, err := u.losses.List(ctx, defaultLossPeriodDays)
		results.losses = r
		errs <- wrap("pérdidas explícitas", err)
	}()

	var firstErr error
	for i := 0; i < 6; i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func (u *AggregatorUsecase) summarize(ctx context.Context, results *detectorResults, criticalCount, warningCount int) (dto.AlertsSummary, dto.AlertsMetrics, error) {
	totalProducts, err := u.products.CountActive(ctx)
	if err != nil {
		return dto.AlertsSummary{}, dto.AlertsMetrics{}, fmt.Errorf("conteo de productos: %w", err)
	}
	withStock, err := u.products.CountActiveWithStock(ctx)
	if err != nil {
		return dto.AlertsSummary{}, dto.AlertsMetrics{}, fmt.Errorf("conteo con stock: %w", err)
	}
	stockValue, err := u.products.TotalStockValue(ctx)
	if err != nil {
		return dto.AlertsSummary{}, dto.AlertsMetrics{}, fmt.Errorf("valor de inventario: %w", err)
	}
	belowMin, err := u.products.CountBelowMinStock(ctx)
	if err != nil {
		return dto.AlertsSummary{}, dto.AlertsMetrics{}, fmt.Errorf("bajo mínimo: %w", err)
	}
	sales30, err := u.sales.TotalRevenueSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return dto.AlertsSummary{}, dto.AlertsMetrics{}, fmt.Errorf("ventas de 30 días: %w", err)
	}

	summary := dto.AlertsSummary{
		TotalProducts:     totalProducts,
		ProductsWithStock: withStock,
		TotalStockValue:   stockValue.Round(2),
		CriticalCount:     criticalCount,
		WarningCount:      warningCount,
	}
	metrics := dto.AlertsMetrics{
		OutOfStockCount:  totalProducts - withStock,
		BelowMinStock:    belowMin,
		SalesLast30Days:  sales30.Round(2),
		AtRiskCount:      results.risk.TotalAtRisk,
		SlowMovingCount:  results.slowMoving.TotalProducts,
		DiscrepancyCount: len(results.discrepancies.Items),
	}
	return summary, metrics, nil
}

func healthStatus(score int) string {
	switch {
	case score >= 80:
		return "EXCELLENT"
	case score >= 60:
		return "GOOD"
	case score >= 40:
		return "FAIR"
	default:
		return "POOR"
	}
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
