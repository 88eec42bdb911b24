package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
)

// StoreHandler estado del almacén y reintento de escrituras.
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Status godoc
// @Summary      Estado del almacén
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ports.StoreStatus
// @Router       /api/store/status [get]
func (h *StoreHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Flush godoc
// @Summary      Reintentar escrituras pendientes
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ports.StoreStatus
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/store/flush [post]
func (h *StoreHandler) Flush(c *fiber.Ctx) error {
	out, err := h.uc.Flush(c.UserContext(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
