package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/alerts"
)

// AlertsHandler endpoint del dashboard consolidado.
type AlertsHandler struct {
	aggregator *alerts.AggregatorUsecase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(aggregator *alerts.AggregatorUsecase) *AlertsHandler {
	return &AlertsHandler{aggregator: aggregator}
}

// GetHealth godoc
// @Summary      Salud consolidada del inventario
// @Description  Mezcla todos los detectores con parámetros fijos: alertas
//               críticas, advertencias, recomendaciones y puntaje 0-100.
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  dto.HealthReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertsHandler) GetHealth(c *fiber.Ctx) error {
	report, err := h.aggregator.Health(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
