package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
)

// LocalPrincipal key en c.Locals con la identidad autenticada.
const LocalPrincipal = "principal"

// TokenVerifier valida un token y devuelve la identidad que transporta.
type TokenVerifier interface {
	PrincipalFromToken(token string) (access.Principal, error)
}

// AuthMiddleware valida el Bearer Token JWT y deja el access.Principal en c.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		p, err := verifier.PrincipalFromToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// RequireAction corta con 403 si el nivel del principal no habilita alguna de las acciones.
// Debe ir después de AuthMiddleware.
func RequireAction(actions ...access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if err := p.CanAny(actions...); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) (access.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(access.Principal)
	return p, ok
}

// principal igual que GetPrincipal para handlers ya protegidos; sin sesión devuelve el valor cero,
// que cualquier chequeo de permisos rechaza.
func principal(c *fiber.Ctx) access.Principal {
	p, _ := GetPrincipal(c)
	return p
}
