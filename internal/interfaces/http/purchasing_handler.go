package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/application/purchasing"
	"github.com/jhoicas/stock-insights/pkg/config"
)

// PurchasingHandler endpoints del motor de sugerencias de compra.
type PurchasingHandler struct {
	suggestions *purchasing.SuggestionsUsecase
	defaults    config.EngineConfig
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(suggestions *purchasing.SuggestionsUsecase, defaults config.EngineConfig) *PurchasingHandler {
	return &PurchasingHandler{suggestions: suggestions, defaults: defaults}
}

func (h *PurchasingHandler) params(c *fiber.Ctx) (int, int, decimal.Decimal, error) {
	forecastDays := c.QueryInt("forecast_days", h.defaults.ForecastDays)
	historyDays := c.QueryInt("history_days", 30)

	minOrderValue := decimal.Zero
	if raw := c.Query("min_order_value"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return 0, 0, decimal.Zero, err
		}
		minOrderValue = v
	}
	return forecastDays, historyDays, minOrderValue, nil
}

// GetSuggestions godoc
// @Summary      Sugerencias de compra
// @Description  Cantidades a ordenar para cubrir la demanda del horizonte, con
//               colchón del 20% y redondeo a tamaños de orden prácticos.
// @Tags         purchasing
// @Produce      json
// @Param        forecast_days    query  int     false  "Horizonte del pronóstico (default 30)."
// @Param        history_days     query  int     false  "Historia para la demanda diaria (default 30)."
// @Param        min_order_value  query  number  false  "Valor mínimo de orden (default 0)."
// @Success      200  {object}  dto.PurchaseSuggestionsReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/purchasing/suggestions [get]
func (h *PurchasingHandler) GetSuggestions(c *fiber.Ctx) error {
	forecastDays, historyDays, minOrderValue, err := h.params(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "min_order_value inválido",
		})
	}

	report, err := h.suggestions.Suggest(c.Context(), forecastDays, historyDays, minOrderValue)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GetSupplierOrders godoc
// @Summary      Órdenes consolidadas por proveedor
// @Description  Agrupa las sugerencias bajo el último proveedor conocido de
//               cada producto, una orden por proveedor.
// @Tags         purchasing
// @Produce      json
// @Param        forecast_days    query  int     false  "Horizonte del pronóstico (default 30)."
// @Param        history_days     query  int     false  "Historia para la demanda diaria (default 30)."
// @Param        min_order_value  query  number  false  "Valor mínimo de orden (default 0)."
// @Success      200  {object}  dto.SupplierOrdersReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/purchasing/supplier-orders [get]
func (h *PurchasingHandler) GetSupplierOrders(c *fiber.Ctx) error {
	forecastDays, historyDays, minOrderValue, err := h.params(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "min_order_value inválido",
		})
	}

	report, err := h.suggestions.GroupBySupplier(c.Context(), forecastDays, historyDays, minOrderValue)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
