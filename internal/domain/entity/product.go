package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo (hoja "produtos").
// StockQty es una proyección del libro de movimientos: solo el motor de inventario la ajusta.
type Product struct {
	ID       int
	Name     string
	StockQty decimal.Decimal
	Unit     string // unidad de medida (un, kg, l...)
	Category string
}
