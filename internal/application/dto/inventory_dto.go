package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest movimiento tal como lo envía el formulario: referencias por nombre.
// Date es opcional (YYYY-MM-DD); si falta se usa la fecha de hoy.
type RegisterMovementRequest struct {
	ProductName     string          `json:"product_name" validate:"required"`
	ResponsibleName string          `json:"responsible_name" validate:"required"`
	UnitName        string          `json:"unit_name" validate:"required"`
	Kind            string          `json:"kind" validate:"required,oneof=ENTRY EXIT"`
	Quantity        decimal.Decimal `json:"quantity"`
	Supplier        string          `json:"supplier" validate:"max=200"`
	Reason          string          `json:"reason" validate:"max=500"`
	Date            string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MovementResponse movimiento registrado con el stock resultante del producto.
type MovementResponse struct {
	ProductID     int             `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	Date          string          `json:"date"`
	StockQtyAfter decimal.Decimal `json:"stock_qty_after"`
}

// HistoryQuery filtros del historial. From/To en YYYY-MM-DD, inclusivos.
type HistoryQuery struct {
	Unit string `query:"unit"`
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Sort string `query:"sort" validate:"omitempty,oneof=asc desc"`
	PageRequest
}

// HistoryRowResponse fila desnormalizada del historial.
type HistoryRowResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ResponsibleID   int             `json:"responsible_id"`
	ResponsibleName string          `json:"responsible_name"`
	UnitID          int             `json:"unit_id"`
	UnitName        string          `json:"unit_name"`
	Kind            string          `json:"kind"`
	Quantity        decimal.Decimal `json:"quantity"`
	Supplier        string          `json:"supplier"`
	Reason          string          `json:"reason"`
	Date            string          `json:"date"`
}

// HistoryResponse página del historial.
type HistoryResponse struct {
	Items []HistoryRowResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// HistoryReportDTO datos del reporte PDF del historial.
type HistoryReportDTO struct {
	Title       string
	GeneratedAt string
	GeneratedBy string
	Filters     string
	Rows        []HistoryRowResponse
}
