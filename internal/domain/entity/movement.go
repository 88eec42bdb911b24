package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Centinela para movimientos cuyo producto fue eliminado del catálogo.
const (
	UnknownProductID   = "UNKNOWN"
	UnknownProductName = "UNKNOWN PRODUCT"
)

// MovementKind tipo de movimiento del libro.
type MovementKind string

const (
	MovementEntry MovementKind = "ENTRY" // entrada
	MovementExit  MovementKind = "EXIT"  // salida
)

// Valid indica si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	return k == MovementEntry || k == MovementExit
}

// ProductRef referencia de un movimiento a un producto: un id vivo o el centinela UNKNOWN.
type ProductRef struct {
	ID      int
	Unknown bool
}

// KnownProduct construye una referencia a un producto existente.
func KnownProduct(id int) ProductRef { return ProductRef{ID: id} }

// UnknownProduct construye la referencia centinela.
func UnknownProduct() ProductRef { return ProductRef{Unknown: true} }

// Points indica si la referencia apunta al producto id (nunca para el centinela).
func (r ProductRef) Points(id int) bool { return !r.Unknown && r.ID == id }

func (r ProductRef) String() string {
	if r.Unknown {
		return UnknownProductID
	}
	return strconv.Itoa(r.ID)
}

// Movement representa una fila del libro de movimientos (hoja "movimentacoes").
// No guarda el nombre del producto: los reportes lo resuelven al leer.
type Movement struct {
	Product       ProductRef
	ResponsibleID int
	UnitID        int
	Kind          MovementKind
	Quantity      decimal.Decimal
	Supplier      string
	Reason        string
	Date          time.Time // cero si la celda no pudo normalizarse
	DateRaw       string    // valor original de la celda, se conserva al reescribir
}

// Delta devuelve el efecto del movimiento sobre el stock (+ entrada, - salida).
// Un tipo desconocido leído de la planilla no afecta el stock.
func (m Movement) Delta() decimal.Decimal {
	switch m.Kind {
	case MovementEntry:
		return m.Quantity
	case MovementExit:
		return m.Quantity.Neg()
	}
	return decimal.Zero
}
