package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/availability"
	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/pkg/config"
)

// AvailabilityHandler endpoints de disponibilidad histórica y caídas de demanda.
type AvailabilityHandler struct {
	availability *availability.AvailabilityUsecase
	demandDrop   *availability.DemandDropUsecase
	defaults     config.EngineConfig
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(
	av *availability.AvailabilityUsecase,
	demandDrop *availability.DemandDropUsecase,
	defaults config.EngineConfig,
) *AvailabilityHandler {
	return &AvailabilityHandler{availability: av, demandDrop: demandDrop, defaults: defaults}
}

// GetAvailability godoc
// @Summary      Tasa de disponibilidad por producto
// @Description  Porcentaje del período con stock, reconstruido desde los huecos
//               del ledger, para productos con demanda.
// @Tags         availability
// @Produce      json
// @Param        period_days  query  int  false  "Período analizado (default 30)."
// @Success      200  {object}  dto.AvailabilityReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *fiber.Ctx) error {
	report, err := h.availability.Analyze(c.Context(), c.QueryInt("period_days", h.defaults.AvailabilityDays))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetDemandDrops godoc
// @Summary      Caídas operativas de demanda
// @Description  Productos surtidos cuya venta reciente cayó frente a su
//               historial, con reposición que descarta descontinuación.
// @Tags         availability
// @Produce      json
// @Param        historical_days  query  int     false  "Ventana histórica (default 30)."
// @Param        recent_days      query  int     false  "Ventana reciente (default 7)."
// @Param        drop_pct         query  number  false  "Umbral de caída en % (default 70)."
// @Success      200  {object}  dto.DemandDropReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/availability/demand-drops [get]
func (h *AvailabilityHandler) GetDemandDrops(c *fiber.Ctx) error {
	threshold := decimal.NewFromFloat(h.defaults.DemandDropPct)
	if raw := c.Query("drop_pct"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PARAMS", Message: "drop_pct inválido",
			})
		}
		threshold = v
	}

	report, err := h.demandDrop.Detect(
		c.Context(),
		c.QueryInt("historical_days", 30),
		c.QueryInt("recent_days", 7),
		threshold,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
