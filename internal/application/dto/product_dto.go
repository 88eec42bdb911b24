package dto

import "github.com/shopspring/decimal"

// Criterios de orden del catálogo.
const (
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
	SortQtyAsc   = "qty_asc"
	SortQtyDesc  = "qty_desc"
)

// ProductListQuery filtros del listado de productos.
type ProductListQuery struct {
	Search string `query:"search"`
	Sort   string `query:"sort" validate:"omitempty,oneof=name_asc name_desc qty_asc qty_desc"`
	PageRequest
}

// CreateProductRequest alta de producto. ID es opcional: si falta se asigna el próximo libre.
type CreateProductRequest struct {
	ID       *int            `json:"id,omitempty" validate:"omitempty,min=1"`
	Name     string          `json:"name" validate:"required,max=200"`
	StockQty decimal.Decimal `json:"stock_qty"`
	Unit     string          `json:"unit" validate:"max=20"`
	Category string          `json:"category" validate:"max=100"`
}

// UpdateProductRequest reemplazo completo de los campos editables.
type UpdateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	StockQty decimal.Decimal `json:"stock_qty"`
	Unit     string          `json:"unit" validate:"max=20"`
	Category string          `json:"category" validate:"max=100"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	StockQty decimal.Decimal `json:"stock_qty"`
	Unit     string          `json:"unit"`
	Category string          `json:"category"`
}

// ProductDetailResponse producto con la cantidad de movimientos que lo referencian.
type ProductDetailResponse struct {
	ProductResponse
	MovementCount int `json:"movement_count"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteProductResponse resultado de eliminar un producto.
type DeleteProductResponse struct {
	ID                 int `json:"id"`
	RepointedMovements int `json:"repointed_movements"`
}
