package entity

// ResponsibleParty responsable de movimientos (hoja "responsaveis").
type ResponsibleParty struct {
	ID     int
	Name   string
	UnitID int
	Role   string // cargo
	Phone  string
}

// Unit unidad organizacional (hoja "unidades").
type Unit struct {
	ID      int
	Name    string
	Address string
	City    string
	State   string
}
