package sheetcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// header índice de columnas por encabezado normalizado.
type header map[string]int

func indexHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := Fold(name)
		if key == "" {
			continue
		}
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

func (h header) get(row []string, col string) string {
	i, ok := h[Fold(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) missing(cols []string) []string {
	var out []string
	for _, c := range cols {
		if _, ok := h[Fold(c)]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Decode carga en t la tabla name a partir de las filas de la hoja (la primera es el encabezado).
// Las filas vacías se ignoran; las celdas ilegibles quedan en su valor cero, nunca producen error.
// Devuelve las columnas obligatorias ausentes (también quedan en t.MissingColumns).
func Decode(name entity.TableName, rows [][]string, t *entity.Tables) ([]string, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("tabla desconocida %q", name)
	}
	if t.MissingColumns == nil {
		t.MissingColumns = map[entity.TableName][]string{}
	}
	delete(t.MissingColumns, name)
	if len(rows) == 0 {
		clearTable(name, t)
		return nil, nil
	}

	h := indexHeader(rows[0])
	missing := h.missing(Required(name))
	if len(missing) > 0 {
		t.MissingColumns[name] = missing
	}

	clearTable(name, t)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		switch name {
		case entity.TableProducts:
			t.Products = append(t.Products, decodeProduct(h, row))
		case entity.TableMovements:
			t.Movements = append(t.Movements, decodeMovement(h, row))
		case entity.TableResponsibles:
			t.Responsibles = append(t.Responsibles, decodeResponsible(h, row))
		case entity.TableUnits:
			t.Units = append(t.Units, decodeUnit(h, row))
		case entity.TableUsers:
			t.Users = append(t.Users, decodeUser(h, row))
		}
	}
	return missing, nil
}

// Encode produce las filas de la hoja (encabezado incluido) para la tabla name.
func Encode(name entity.TableName, t *entity.Tables) ([][]string, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("tabla desconocida %q", name)
	}
	rows := [][]string{Headers(name)}
	switch name {
	case entity.TableProducts:
		for _, p := range t.Products {
			rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, FormatDecimal(p.StockQty), p.Unit, p.Category})
		}
	case entity.TableMovements:
		for _, m := range t.Movements {
			date := m.DateRaw
			if !m.Date.IsZero() {
				date = FormatDate(m.Date)
			}
			rows = append(rows, []string{
				m.Product.String(), strconv.Itoa(m.ResponsibleID), strconv.Itoa(m.UnitID),
				FormatKind(m.Kind), FormatDecimal(m.Quantity), m.Supplier, m.Reason, date,
			})
		}
	case entity.TableResponsibles:
		for _, r := range t.Responsibles {
			rows = append(rows, []string{strconv.Itoa(r.ID), r.Name, strconv.Itoa(r.UnitID), r.Role, r.Phone})
		}
	case entity.TableUnits:
		for _, u := range t.Units {
			rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.Address, u.City, u.State})
		}
	case entity.TableUsers:
		for _, u := range t.Users {
			rows = append(rows, []string{u.Username, u.Password, FormatLevel(u.Level)})
		}
	}
	return rows, nil
}

func decodeProduct(h header, row []string) entity.Product {
	id, _ := ParseInt(h.get(row, ColProductID))
	qty, _ := ParseDecimal(h.get(row, ColStockQty))
	return entity.Product{
		ID:       id,
		Name:     h.get(row, ColProductName),
		StockQty: qty,
		Unit:     h.get(row, ColMeasureUnit),
		Category: h.get(row, ColCategory),
	}
}

func decodeMovement(h header, row []string) entity.Movement {
	respID, _ := ParseInt(h.get(row, ColResponsibleID))
	unitID, _ := ParseInt(h.get(row, ColUnitID))
	kind, _ := ParseKind(h.get(row, ColKind))
	qty, _ := ParseDecimal(h.get(row, ColQuantity))
	raw := h.get(row, ColDate)
	m := entity.Movement{
		Product:       ParseProductRef(h.get(row, ColProductID)),
		ResponsibleID: respID,
		UnitID:        unitID,
		Kind:          kind,
		Quantity:      qty,
		Supplier:      h.get(row, ColSupplier),
		Reason:        h.get(row, ColReason),
	}
	if d, ok := ParseDate(raw); ok {
		m.Date = d
	} else {
		m.DateRaw = raw
	}
	return m
}

func decodeResponsible(h header, row []string) entity.ResponsibleParty {
	id, _ := ParseInt(h.get(row, ColResponsibleID))
	unitID, _ := ParseInt(h.get(row, ColUnitID))
	return entity.ResponsibleParty{
		ID:     id,
		Name:   h.get(row, ColResponsibleName),
		UnitID: unitID,
		Role:   h.get(row, ColRole),
		Phone:  h.get(row, ColPhone),
	}
}

func decodeUnit(h header, row []string) entity.Unit {
	id, _ := ParseInt(h.get(row, ColUnitID))
	return entity.Unit{
		ID:      id,
		Name:    h.get(row, ColUnitName),
		Address: h.get(row, ColAddress),
		City:    h.get(row, ColCity),
		State:   h.get(row, ColState),
	}
}

func decodeUser(h header, row []string) entity.User {
	level, _ := ParseLevel(h.get(row, ColLevel))
	return entity.User{
		Username: h.get(row, ColUsername),
		Password: h.get(row, ColPassword),
		Level:    level,
	}
}

func clearTable(name entity.TableName, t *entity.Tables) {
	switch name {
	case entity.TableProducts:
		t.Products = nil
	case entity.TableMovements:
		t.Movements = nil
	case entity.TableResponsibles:
		t.Responsibles = nil
	case entity.TableUnits:
		t.Units = nil
	case entity.TableUsers:
		t.Users = nil
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
