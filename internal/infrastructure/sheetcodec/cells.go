package sheetcodec

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/inventory"
)

// Fold normaliza texto para comparar encabezados y enumeraciones: sin acentos, minúsculas, sin espacios externos.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ParseInt lee un id. Acepta "3" y "3.0" (las planillas en la nube devuelven números formateados).
func ParseInt(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(cell)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// ParseDecimal lee una cantidad. Acepta coma decimal ("2,5") cuando no hay punto.
func ParseDecimal(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero, false
	}
	if !strings.Contains(cell, ".") {
		cell = strings.Replace(cell, ",", ".", 1)
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatDecimal escribe la cantidad sin ceros sobrantes.
func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}

// ParseDate normaliza una celda de fecha: texto en los formatos conocidos o número de serie de Excel.
func ParseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if t, ok := inventory.ParseDate(cell); ok {
		return t, true
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate escribe la fecha como ISO; conserva la hora solo si existe.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// ParseKind interpreta el tipo de movimiento (Entrada/Saída o los nombres canónicos).
func ParseKind(cell string) (entity.MovementKind, bool) {
	switch Fold(cell) {
	case "entrada", "entry":
		return entity.MovementEntry, true
	case "saida", "exit":
		return entity.MovementExit, true
	}
	return entity.MovementKind(strings.TrimSpace(cell)), false
}

// FormatKind etiqueta que se escribe en la hoja.
func FormatKind(k entity.MovementKind) string {
	switch k {
	case entity.MovementEntry:
		return "Entrada"
	case entity.MovementExit:
		return "Saída"
	}
	return string(k)
}

// ParseLevel interpreta el nivel de acceso (Gerente/Operador/Visualizador o los nombres canónicos).
func ParseLevel(cell string) (entity.AccessLevel, bool) {
	switch Fold(cell) {
	case "gerente", "manager":
		return entity.LevelManager, true
	case "operador", "operator":
		return entity.LevelOperator, true
	case "visualizador", "viewer":
		return entity.LevelViewer, true
	}
	return entity.AccessLevel(strings.TrimSpace(cell)), false
}

// FormatLevel etiqueta que se escribe en la hoja.
func FormatLevel(l entity.AccessLevel) string {
	switch l {
	case entity.LevelManager:
		return "Gerente"
	case entity.LevelOperator:
		return "Operador"
	case entity.LevelViewer:
		return "Visualizador"
	}
	return string(l)
}

// ParseProductRef lee la referencia de producto de un movimiento; reconoce el centinela.
func ParseProductRef(cell string) entity.ProductRef {
	switch Fold(cell) {
	case Fold(entity.UnknownProductID), "desconhecido":
		return entity.UnknownProduct()
	}
	id, _ := ParseInt(cell)
	return entity.KnownProduct(id)
}
