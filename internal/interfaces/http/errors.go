package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
)

// requestError error de forma de la petición (cuerpo, query o path) detectado antes del caso de uso.
type requestError struct {
	Code    string
	Message string
}

func (e *requestError) Error() string { return e.Message }

func badRequest(code, msg string) error { return &requestError{Code: code, Message: msg} }

// errorMapping de error de dominio a estado HTTP y código estable. El orden importa: las causas
// específicas de autenticación van antes que el padre.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrNoSuchUser, fiber.StatusUnauthorized, "NO_SUCH_USER"},
	{domain.ErrWrongPassword, fiber.StatusUnauthorized, "WRONG_PASSWORD"},
	{domain.ErrMalformedUserTable, fiber.StatusServiceUnavailable, "MALFORMED_USER_TABLE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrReferenceNotFound, fiber.StatusBadRequest, "REFERENCE_NOT_FOUND"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicateName, fiber.StatusConflict, "DUPLICATE_NAME"},
	{domain.ErrDuplicateID, fiber.StatusConflict, "DUPLICATE_ID"},
	{domain.ErrPersistence, fiber.StatusServiceUnavailable, "PERSISTENCE_FAILURE"},
}

// writeError responde con dto.ErrorResponse según el tipo de error.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: reqErr.Code, Message: reqErr.Message})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ErrorHandler manejador de errores de Fiber: rutas inexistentes y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
