package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
)

// UserHandler administración de usuarios (solo gerente).
type UserHandler struct {
	uc           *usecase.UserUseCase
	confirmDelay int
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, confirmDelayMs int) *UserHandler {
	return &UserHandler{uc: uc, confirmDelay: confirmDelayMs}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Usuario"
// @Success      201   {object}  dto.MutationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  El usuario se selecciona por su username actual (coincidencia exacta).
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        username  path  string                 true  "Username actual"
// @Param        body      body  dto.UpdateUserRequest  true  "Usuario"
// @Success      200   {object}  dto.MutationResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{username} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	username, err := url.PathUnescape(c.Params("username"))
	if err != nil || username == "" {
		return writeError(c, badRequest("INVALID_USERNAME", "username inválido"))
	}
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), principal(c), username, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MutationResponse{Data: out, ConfirmDelayMs: h.confirmDelay})
}
