package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/classification"
)

// ClassificationHandler endpoints de ABC, rentabilidad y rotación.
type ClassificationHandler struct {
	abc           *classification.ABCUsecase
	profitability *classification.ProfitabilityUsecase
	turnover      *classification.TurnoverUsecase
}

// NewClassificationHandler construye el handler.
func NewClassificationHandler(
	abc *classification.ABCUsecase,
	profitability *classification.ProfitabilityUsecase,
	turnover *classification.TurnoverUsecase,
) *ClassificationHandler {
	return &ClassificationHandler{abc: abc, profitability: profitability, turnover: turnover}
}

// GetABC godoc
// @Summary      Clasificación ABC (Pareto)
// @Description  Clase A hasta el 80% acumulado de la métrica, B hasta el 95%,
//               C el resto.
// @Tags         classification
// @Produce      json
// @Param        period  query  string  false  "week | month | quarter | all (default month)."
// @Param        metric  query  string  false  "revenue | profit | quantity (default revenue)."
// @Success      200  {object}  dto.ABCReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/classification/abc [get]
func (h *ClassificationHandler) GetABC(c *fiber.Ctx) error {
	report, err := h.abc.Classify(c.Context(), c.Query("period"), c.Query("metric"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetProfitability godoc
// @Summary      Rentabilidad por producto
// @Tags         classification
// @Produce      json
// @Param        period  query  string  false  "week | month | quarter | all (default month)."
// @Success      200  {object}  dto.ProfitabilityReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/classification/profitability [get]
func (h *ClassificationHandler) GetProfitability(c *fiber.Ctx) error {
	report, err := h.profitability.Analyze(c.Context(), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetProfitabilitySummary godoc
// @Summary      Resumen de rentabilidad con mejores y peores productos
// @Tags         classification
// @Produce      json
// @Param        period  query  string  false  "week | month | quarter | all (default month)."
// @Success      200  {object}  dto.ProfitabilitySummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/classification/profitability/summary [get]
func (h *ClassificationHandler) GetProfitabilitySummary(c *fiber.Ctx) error {
	report, err := h.profitability.Summary(c.Context(), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetTurnover godoc
// @Summary      Velocidad compra a venta por producto
// @Tags         classification
// @Produce      json
// @Param        period_days  query  int  false  "Ventana de compras recibidas (default 90)."
// @Success      200  {object}  dto.TurnoverReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/classification/turnover [get]
func (h *ClassificationHandler) GetTurnover(c *fiber.Ctx) error {
	report, err := h.turnover.Analyze(c.Context(), c.QueryInt("period_days", 90))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetAgeDistribution godoc
// @Summary      Antigüedad del inventario
// @Description  Tramos 0-7, 8-14, 15-30, 31-60 y 60+ días desde la última
//               entrada, ponderados por valor de stock.
// @Tags         classification
// @Produce      json
// @Success      200  {object}  dto.AgeDistributionReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/classification/age-distribution [get]
func (h *ClassificationHandler) GetAgeDistribution(c *fiber.Ctx) error {
	report, err := h.turnover.AgeDistribution(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
