package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// AllUnits valor del filtro de unidad que desactiva el filtrado.
const AllUnits = "ALL"

// HistoryFilter filtros del reporte. From/To son inclusivos y se comparan por día.
type HistoryFilter struct {
	Unit string
	From *time.Time
	To   *time.Time
}

// HistoryRow fila desnormalizada del historial. Los nombres quedan vacíos si la referencia no existe.
type HistoryRow struct {
	Product         entity.ProductRef
	ProductName     string
	ResponsibleID   int
	ResponsibleName string
	UnitID          int
	UnitName        string
	Kind            entity.MovementKind
	Quantity        decimal.Decimal
	Supplier        string
	Reason          string
	Date            time.Time // cero si la fecha no pudo normalizarse
	DateRaw         string
}

// BuildHistory hace left join de movimientos con productos, responsables y unidades.
// Nunca descarta un movimiento por referencia huérfana; solo los filtros reducen filas.
// Conserva el orden de inserción.
func BuildHistory(
	movements []entity.Movement,
	products []entity.Product,
	responsibles []entity.ResponsibleParty,
	units []entity.Unit,
	f HistoryFilter,
) []HistoryRow {
	productNames := make(map[int]string, len(products))
	for _, p := range products {
		if _, dup := productNames[p.ID]; !dup {
			productNames[p.ID] = p.Name
		}
	}
	respNames := make(map[int]string, len(responsibles))
	for _, r := range responsibles {
		if _, dup := respNames[r.ID]; !dup {
			respNames[r.ID] = r.Name
		}
	}
	unitNames := make(map[int]string, len(units))
	for _, u := range units {
		if _, dup := unitNames[u.ID]; !dup {
			unitNames[u.ID] = u.Name
		}
	}

	from, to, dated := dayBounds(f)
	if dated && from.After(to) {
		return []HistoryRow{}
	}
	unitFilter := strings.TrimSpace(f.Unit)
	filterUnit := unitFilter != "" && unitFilter != AllUnits

	rows := make([]HistoryRow, 0, len(movements))
	for _, m := range movements {
		row := HistoryRow{
			Product:         m.Product,
			ResponsibleID:   m.ResponsibleID,
			ResponsibleName: respNames[m.ResponsibleID],
			UnitID:          m.UnitID,
			UnitName:        unitNames[m.UnitID],
			Kind:            m.Kind,
			Quantity:        m.Quantity,
			Supplier:        m.Supplier,
			Reason:          m.Reason,
			Date:            m.Date,
			DateRaw:         m.DateRaw,
		}
		if m.Product.Unknown {
			row.ProductName = entity.UnknownProductName
		} else {
			row.ProductName = productNames[m.Product.ID]
		}
		if row.Date.IsZero() {
			if d, ok := ParseDate(m.DateRaw); ok {
				row.Date = d
			}
		}

		if filterUnit && row.UnitName != unitFilter {
			continue
		}
		if dated {
			if row.Date.IsZero() {
				continue
			}
			day := truncateDay(row.Date)
			if day.Before(from) || day.After(to) {
				continue
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// HistoryUnitNames nombres de unidad distintos presentes en el historial, en orden de aparición.
func HistoryUnitNames(rows []HistoryRow) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, r := range rows {
		if _, ok := seen[r.UnitName]; ok {
			continue
		}
		seen[r.UnitName] = struct{}{}
		names = append(names, r.UnitName)
	}
	return names
}

// dateLayouts representaciones de fecha aceptadas en las planillas (ISO, pt-BR, formato corto de Excel).
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2006/01/02",
	"01-02-06",
}

// ParseDate normaliza una fecha en texto. Devuelve false si ningún formato aplica.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dayBounds(f HistoryFilter) (from, to time.Time, dated bool) {
	if f.From == nil && f.To == nil {
		return time.Time{}, time.Time{}, false
	}
	from = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if f.From != nil {
		from = truncateDay(*f.From)
	}
	if f.To != nil {
		to = truncateDay(*f.To)
	}
	return from, to, true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
