package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/stock"
	"github.com/jhoicas/stock-insights/pkg/config"
)

// StockHandler endpoints de los detectores reactivos de stock.
type StockHandler struct {
	ruptures   *stock.RuptureUsecase
	slowMoving *stock.SlowMovingUsecase
	defaults   config.EngineConfig
}

// NewStockHandler construye el handler.
func NewStockHandler(ruptures *stock.RuptureUsecase, slowMoving *stock.SlowMovingUsecase, defaults config.EngineConfig) *StockHandler {
	return &StockHandler{ruptures: ruptures, slowMoving: slowMoving, defaults: defaults}
}

// GetRuptures godoc
// @Summary      Productos en quiebre de stock
// @Description  Productos agotados que registraron ventas pagadas en la ventana,
//               con demanda diaria y venta perdida estimada.
// @Tags         stock
// @Produce      json
// @Param        lookback_days  query  int  false  "Ventana de demanda en días (default 30)."
// @Success      200  {object}  dto.RuptureReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/stock/ruptures [get]
func (h *StockHandler) GetRuptures(c *fiber.Ctx) error {
	lookback := c.QueryInt("lookback_days", h.defaults.RuptureLookbackDays)

	report, err := h.ruptures.DetectRuptures(c.Context(), lookback)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetSlowMoving godoc
// @Summary      Productos de lenta rotación
// @Description  Productos con stock y sin venta pagada reciente, ordenados por
//               capital inmovilizado.
// @Tags         stock
// @Produce      json
// @Param        threshold_days  query  int  false  "Días sin venta (default 60)."
// @Success      200  {object}  dto.SlowMovingReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/stock/slow-moving [get]
func (h *StockHandler) GetSlowMoving(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold_days", h.defaults.SlowMovingDays)

	report, err := h.slowMoving.Detect(c.Context(), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
