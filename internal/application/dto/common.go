package dto

// PageRequest paginación para listados (catálogo e historial).
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Slice devuelve los límites [from, to) de la página dentro de total elementos.
func (p PageRequest) Slice(total int) (from, to int) {
	from = p.Offset
	if from > total {
		from = total
	}
	to = from + p.Limit
	if to > total {
		to = total
	}
	return from, to
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MutationResponse envuelve el resultado de una escritura. ConfirmDelayMs indica cuánto
// mostrar el mensaje de éxito antes de refrescar la vista.
type MutationResponse struct {
	Data           any `json:"data"`
	ConfirmDelayMs int `json:"confirm_delay_ms"`
}

// NextIDResponse próximo id libre de una tabla.
type NextIDResponse struct {
	Table  string `json:"table"`
	NextID int    `json:"next_id"`
}
