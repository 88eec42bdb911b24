package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// RegistryHandler ABM de responsables y unidades.
type RegistryHandler struct {
	uc           *usecase.RegistryUseCase
	ids          *usecase.ProductUseCase
	confirmDelay int
}

// NewRegistryHandler construye el handler. ids resuelve el próximo id libre.
func NewRegistryHandler(uc *usecase.RegistryUseCase, ids *usecase.ProductUseCase, confirmDelayMs int) *RegistryHandler {
	return &RegistryHandler{uc: uc, ids: ids, confirmDelay: confirmDelayMs}
}

// ListResponsibles godoc
// @Summary      Listar responsables
// @Tags         responsibles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResponsibleResponse
// @Router       /api/responsibles [get]
func (h *RegistryHandler) ListResponsibles(c *fiber.Ctx) error {
	out, err := h.uc.ListResponsibles(c.UserContext(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextResponsibleID godoc
// @Summary      Próximo ID libre de responsables
// @Tags         responsibles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextIDResponse
// @Router       /api/responsibles/next-id [get]
func (h *RegistryHandler) NextResponsibleID(c *fiber.Ctx) error {
	return h.nextID(c, entity.TableResponsibles)
}

// CreateResponsible godoc
// @Summary      Crear responsable
// @Tags         responsibles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResponsibleRequest  true  "Responsable"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/responsibles [post]
func (h *RegistryHandler) CreateResponsible(c *fiber.Ctx) error {
	var in dto.ResponsibleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateResponsible(c.UserContext(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}

// UpdateResponsible godoc
// @Summary      Actualizar responsable
// @Tags         responsibles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID"
// @Param        body  body  dto.ResponsibleRequest  true  "Responsable"
// @Success      200   {object}  dto.MutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/responsibles/{id} [put]
func (h *RegistryHandler) UpdateResponsible(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ResponsibleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateResponsible(c.UserContext(), principal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}

// DeleteResponsible godoc
// @Summary      Eliminar responsable
// @Tags         responsibles
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/responsibles/{id} [delete]
func (h *RegistryHandler) DeleteResponsible(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteResponsible(c.UserContext(), principal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUnits godoc
// @Summary      Listar unidades
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UnitResponse
// @Router       /api/units [get]
func (h *RegistryHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.uc.ListUnits(c.UserContext(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextUnitID godoc
// @Summary      Próximo ID libre de unidades
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextIDResponse
// @Router       /api/units/next-id [get]
func (h *RegistryHandler) NextUnitID(c *fiber.Ctx) error {
	return h.nextID(c, entity.TableUnits)
}

// CreateUnit godoc
// @Summary      Crear unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UnitRequest  true  "Unidad"
// @Success      201   {object}  dto.MutationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *RegistryHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.UnitRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateUnit(c.UserContext(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}

// UpdateUnit godoc
// @Summary      Actualizar unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID"
// @Param        body  body  dto.UnitRequest  true  "Unidad"
// @Success      200   {object}  dto.MutationResponse
// @Router       /api/units/{id} [put]
func (h *RegistryHandler) UpdateUnit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UnitRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateUnit(c.UserContext(), principal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}

// DeleteUnit godoc
// @Summary      Eliminar unidad
// @Description  Responsables y movimientos que la referencian no se modifican.
// @Tags         units
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Router       /api/units/{id} [delete]
func (h *RegistryHandler) DeleteUnit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteUnit(c.UserContext(), principal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RegistryHandler) nextID(c *fiber.Ctx, table entity.TableName) error {
	out, err := h.ids.NextID(c.UserContext(), principal(c), table)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
