package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/sales"
)

// SalesHandler endpoints del ranking de ventas.
type SalesHandler struct {
	topSellers *sales.TopSellersUsecase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(topSellers *sales.TopSellersUsecase) *SalesHandler {
	return &SalesHandler{topSellers: topSellers}
}

// GetTopSellers godoc
// @Summary      Productos más vendidos
// @Tags         sales
// @Produce      json
// @Param        period  query  string  false  "week | month | quarter | all (default month)."
// @Param        metric  query  string  false  "revenue | quantity | frequency (default revenue)."
// @Param        limit   query  int     false  "Máximo de productos (default 10)."
// @Success      200  {object}  dto.TopSellersReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/top-sellers [get]
func (h *SalesHandler) GetTopSellers(c *fiber.Ctx) error {
	report, err := h.topSellers.TopSellers(
		c.Context(),
		c.Query("period"),
		c.Query("metric"),
		c.QueryInt("limit", 10),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
