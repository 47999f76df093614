package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/application/integrity"
	"github.com/jhoicas/stock-insights/pkg/config"
)

// IntegrityHandler endpoints de reconciliación del ledger y pérdidas.
type IntegrityHandler struct {
	discrepancies *integrity.DiscrepancyUsecase
	losses        *integrity.ExplicitLossesUsecase
	defaults      config.EngineConfig
}

// NewIntegrityHandler construye el handler.
func NewIntegrityHandler(
	discrepancies *integrity.DiscrepancyUsecase,
	losses *integrity.ExplicitLossesUsecase,
	defaults config.EngineConfig,
) *IntegrityHandler {
	return &IntegrityHandler{discrepancies: discrepancies, losses: losses, defaults: defaults}
}

// GetDiscrepancies godoc
// @Summary      Discrepancias entre el ledger y el stock físico
// @Description  Reconciliación del historial completo de movimientos contra
//               current_stock; reporta desviaciones sobre la tolerancia.
// @Tags         integrity
// @Produce      json
// @Param        tolerance_pct  query  number  false  "Tolerancia en % (default 5)."
// @Success      200  {object}  dto.DiscrepancyReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/integrity/discrepancies [get]
func (h *IntegrityHandler) GetDiscrepancies(c *fiber.Ctx) error {
	tolerance := decimal.NewFromFloat(h.defaults.LossTolerancePct)
	if raw := c.Query("tolerance_pct"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: "tolerance_pct inválido",
			})
		}
		tolerance = v
	}

	report, err := h.discrepancies.Detect(c.Context(), tolerance)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetExplicitLosses godoc
// @Summary      Pérdidas reconocidas en el ledger
// @Description  Movimientos LOSS del período valorados a costo, aparte de la
//               reconciliación.
// @Tags         integrity
// @Produce      json
// @Param        period_days  query  int  false  "Período en días (default 30)."
// @Success      200  {object}  dto.ExplicitLossesReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/integrity/losses [get]
func (h *IntegrityHandler) GetExplicitLosses(c *fiber.Ctx) error {
	report, err := h.losses.List(c.Context(), c.QueryInt("period_days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
