package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/risk"
	"github.com/jhoicas/stock-insights/pkg/config"
)

// RiskHandler endpoints del pronóstico de quiebre y órdenes en tránsito.
type RiskHandler struct {
	forecast *risk.StockoutRiskUsecase
	pending  *risk.PendingOrdersUsecase
	defaults config.EngineConfig
}

// NewRiskHandler construye el handler.
func NewRiskHandler(forecast *risk.StockoutRiskUsecase, pending *risk.PendingOrdersUsecase, defaults config.EngineConfig) *RiskHandler {
	return &RiskHandler{forecast: forecast, pending: pending, defaults: defaults}
}

// GetStockoutRisk godoc
// @Summary      Pronóstico de quiebre de stock
// @Description  Productos con cobertura por debajo del umbral, clasificados
//               CRITICAL/HIGH/MEDIUM/LOW según cobertura y órdenes en camino.
// @Tags         risk
// @Produce      json
// @Param        forecast_days       query  int  false  "Horizonte del pronóstico (default 30)."
// @Param        history_days        query  int  false  "Historia para la demanda diaria (default 90)."
// @Param        min_days_threshold  query  int  false  "Cobertura máxima reportada (default 7)."
// @Success      200  {object}  dto.StockoutRiskReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/risk/stockouts [get]
func (h *RiskHandler) GetStockoutRisk(c *fiber.Ctx) error {
	forecastDays := c.QueryInt("forecast_days", h.defaults.ForecastDays)
	historyDays := c.QueryInt("history_days", h.defaults.HistoryDays)
	threshold := c.QueryInt("min_days_threshold", 7)

	report, err := h.forecast.Forecast(c.Context(), forecastDays, historyDays, threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetPendingOrders godoc
// @Summary      Órdenes de compra en tránsito
// @Description  Todas las órdenes PENDING con sus líneas, las más demoradas primero.
// @Tags         risk
// @Produce      json
// @Param        product_id  query  string  false  "Solo órdenes que incluyen este producto."
// @Success      200  {object}  dto.PendingOrderSummary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/risk/pending-orders [get]
func (h *RiskHandler) GetPendingOrders(c *fiber.Ctx) error {
	report, err := h.pending.Summary(c.Context(), c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
