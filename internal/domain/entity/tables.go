package entity

// TableName nombre fijo de cada hoja del almacén.
type TableName string

const (
	TableMovements    TableName = "movimentacoes"
	TableProducts     TableName = "produtos"
	TableResponsibles TableName = "responsaveis"
	TableUnits        TableName = "unidades"
	TableUsers        TableName = "usuarios"
)

// AllTables orden canónico de las cinco hojas.
var AllTables = []TableName{TableMovements, TableProducts, TableResponsibles, TableUnits, TableUsers}

// Valid indica si el nombre corresponde a una de las cinco hojas.
func (n TableName) Valid() bool {
	for _, t := range AllTables {
		if t == n {
			return true
		}
	}
	return false
}

// Tables conjunto completo de tablas cargado desde el almacén.
// MissingColumns registra, por hoja, las columnas obligatorias ausentes en el origen.
type Tables struct {
	Movements      []Movement
	Products       []Product
	Responsibles   []ResponsibleParty
	Units          []Unit
	Users          []User
	MissingColumns map[TableName][]string
}

// NewTables devuelve un conjunto vacío listo para usar.
func NewTables() *Tables {
	return &Tables{MissingColumns: map[TableName][]string{}}
}

// Clone copia las cinco tablas; las filas son valores, por lo que la copia es independiente.
func (t *Tables) Clone() *Tables {
	if t == nil {
		return NewTables()
	}
	out := &Tables{
		Movements:      append([]Movement(nil), t.Movements...),
		Products:       append([]Product(nil), t.Products...),
		Responsibles:   append([]ResponsibleParty(nil), t.Responsibles...),
		Units:          append([]Unit(nil), t.Units...),
		Users:          append([]User(nil), t.Users...),
		MissingColumns: make(map[TableName][]string, len(t.MissingColumns)),
	}
	for k, v := range t.MissingColumns {
		out.MissingColumns[k] = append([]string(nil), v...)
	}
	return out
}

// CopyFrom reemplaza las tablas indicadas con las de src (todas si names está vacío).
func (t *Tables) CopyFrom(src *Tables, names ...TableName) {
	if len(names) == 0 {
		names = AllTables
	}
	if t.MissingColumns == nil {
		t.MissingColumns = map[TableName][]string{}
	}
	for _, n := range names {
		switch n {
		case TableMovements:
			t.Movements = append([]Movement(nil), src.Movements...)
		case TableProducts:
			t.Products = append([]Product(nil), src.Products...)
		case TableResponsibles:
			t.Responsibles = append([]ResponsibleParty(nil), src.Responsibles...)
		case TableUnits:
			t.Units = append([]Unit(nil), src.Units...)
		case TableUsers:
			t.Users = append([]User(nil), src.Users...)
		}
		if cols, ok := src.MissingColumns[n]; ok && len(cols) > 0 {
			t.MissingColumns[n] = append([]string(nil), cols...)
		} else {
			delete(t.MissingColumns, n)
		}
	}
}

// Len número de filas de la tabla indicada.
func (t *Tables) Len(name TableName) int {
	switch name {
	case TableMovements:
		return len(t.Movements)
	case TableProducts:
		return len(t.Products)
	case TableResponsibles:
		return len(t.Responsibles)
	case TableUnits:
		return len(t.Units)
	case TableUsers:
		return len(t.Users)
	}
	return 0
}
