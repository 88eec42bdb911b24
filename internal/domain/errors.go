package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrReferenceNotFound = errors.New("referencia no encontrada")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrDuplicateName     = errors.New("nombre duplicado")
	ErrDuplicateID       = errors.New("id duplicado")
	ErrPersistence       = errors.New("falla de persistencia")

	// ErrAuthFailure agrupa los fallos de autenticación; errors.Is funciona con el padre y con cada causa.
	ErrAuthFailure        = errors.New("autenticación fallida")
	ErrNoSuchUser         = fmt.Errorf("%w: usuario inexistente", ErrAuthFailure)
	ErrWrongPassword      = fmt.Errorf("%w: contraseña incorrecta", ErrAuthFailure)
	ErrMalformedUserTable = fmt.Errorf("%w: tabla de usuarios sin columnas obligatorias", ErrAuthFailure)
)

// ReferenceError indica qué nombre no pudo resolverse al aplicar un movimiento.
type ReferenceError struct {
	Kind string // producto, responsable, unidad
	Name string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Kind, e.Name)
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

// PersistenceError envuelve una falla del almacén conservando la causa original.
func PersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
