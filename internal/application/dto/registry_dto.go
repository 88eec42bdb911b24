package dto

// ResponsibleRequest alta o edición de responsable. ID opcional en el alta.
type ResponsibleRequest struct {
	ID     *int   `json:"id,omitempty" validate:"omitempty,min=1"`
	Name   string `json:"name" validate:"required,max=200"`
	UnitID int    `json:"unit_id" validate:"required,min=1"`
	Role   string `json:"role" validate:"max=100"`
	Phone  string `json:"phone" validate:"max=40"`
}

// ResponsibleResponse responsable en respuestas.
type ResponsibleResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UnitID   int    `json:"unit_id"`
	UnitName string `json:"unit_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// UnitRequest alta o edición de unidad. ID opcional en el alta.
type UnitRequest struct {
	ID      *int   `json:"id,omitempty" validate:"omitempty,min=1"`
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=300"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=50"`
}

// UnitResponse unidad en respuestas.
type UnitResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}
