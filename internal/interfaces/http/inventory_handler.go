package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-insights/internal/application/dto"
	"github.com/jhoicas/stock-insights/internal/application/inventory"
)

// InventoryHandler endpoint de escritura del ledger.
type InventoryHandler struct {
	register *inventory.RegisterMovementUsecase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUsecase) *InventoryHandler {
	return &InventoryHandler{register: register}
}

// RegisterMovement godoc
// @Summary      Registrar un movimiento de inventario
// @Description  Inserta el movimiento en el ledger y proyecta current_stock en
//               la misma transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        movement  body  dto.RegisterMovementRequest  true  "Movimiento a registrar"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var req dto.RegisterMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	resp, err := h.register.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
