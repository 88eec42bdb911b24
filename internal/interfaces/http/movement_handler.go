package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/inventory"
	"github.com/jhoicas/inventario-planilhas/internal/application/report"
)

// MovementHandler registro de movimientos e historial.
type MovementHandler struct {
	register     *inventory.RegisterMovementUseCase
	history      *report.HistoryUseCase
	confirmDelay int
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, history *report.HistoryUseCase, confirmDelayMs int) *MovementHandler {
	return &MovementHandler{register: register, history: history, confirmDelay: confirmDelayMs}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento
// @Description  Entrada suma y salida resta del stock (puede quedar negativo). Sin fecha se usa hoy.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento por nombres"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.register.RegisterMovement(c.UserContext(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        unit    query  string  false  "Nombre de unidad (ALL = todas)"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        sort    query  string  false  "asc | desc por fecha"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.history.History(c.UserContext(), principal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HistoryUnits godoc
// @Summary      Unidades presentes en el historial
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/history/units [get]
func (h *MovementHandler) HistoryUnits(c *fiber.Ctx) error {
	out, err := h.history.Units(c.UserContext(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HistoryPDF godoc
// @Summary      Historial en PDF
// @Tags         history
// @Security     Bearer
// @Produce      application/pdf
// @Param        unit  query  string  false  "Nombre de unidad"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        sort  query  string  false  "asc | desc"
// @Success      200  {file}  binary
// @Router       /api/history/pdf [get]
func (h *MovementHandler) HistoryPDF(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.history.PDF(c.UserContext(), principal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="historico.pdf"`)
	return c.Send(out)
}
