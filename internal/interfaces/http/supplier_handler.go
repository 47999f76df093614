package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/supplier"
)

// SupplierHandler endpoints del calificador de proveedores.
type SupplierHandler struct {
	scorer *supplier.ScorerUsecase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(scorer *supplier.ScorerUsecase) *SupplierHandler {
	return &SupplierHandler{scorer: scorer}
}

// GetScores godoc
// @Summary      Calificación de proveedores
// @Description  Puntaje compuesto por rotación (50), revenue (30) y lenta
//               rotación (20) de los productos surtidos.
// @Tags         suppliers
// @Produce      json
// @Param        period_days  query  int     false  "Período analizado (default 90)."
// @Param        sort_by      query  string  false  "score | turnover_rate | revenue | slow_moving (default score)."
// @Success      200  {object}  dto.SupplierScoreReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/suppliers/scores [get]
func (h *SupplierHandler) GetScores(c *fiber.Ctx) error {
	report, err := h.scorer.Score(c.Context(), c.QueryInt("period_days", 90), c.Query("sort_by"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
