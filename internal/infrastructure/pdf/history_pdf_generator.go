// Package pdf genera el reporte impreso del historial de movimientos.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  Título + filtros              │  Generado en / por          │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Data | Produto | Tipo | Qtd | Responsável | Unidade  │
//	│  ──────────────────────────────────────────────────────────  │
//	│  RESUMO: movimentos / entradas / saídas                      │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ ports.HistoryPDFGenerator = (*HistoryPDFGenerator)(nil)

// HistoryPDFGenerator implementa ports.HistoryPDFGenerator usando Maroto v2.
type HistoryPDFGenerator struct{}

// NewHistoryPDFGenerator construye el generador.
func NewHistoryPDFGenerator() *HistoryPDFGenerator { return &HistoryPDFGenerator{} }

// GenerateHistory genera el PDF y devuelve sus bytes.
func (g *HistoryPDFGenerator) GenerateHistory(report dto.HistoryReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(report.Title, true).
		WithAuthor(report.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for i, r := range report.Rows {
		m.AddRows(tableRow(r, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report dto.HistoryReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(report.Filters, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+report.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(report.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 1, align.Left),
		h("Produto", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Qtd.", 1, align.Right),
		h("Responsável", 2, align.Left),
		h("Unidade", 2, align.Left),
		h("Fornecedor / Razão", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(r dto.HistoryRowResponse, striped bool) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := row.New(6).Add(
		cell(r.Date, 1, align.Left),
		cell(r.ProductName, 3, align.Left),
		cell(kindLabel(r.Kind), 1, align.Center),
		cell(r.Quantity.String(), 1, align.Right),
		cell(r.ResponsibleName, 2, align.Left),
		cell(r.UnitName, 2, align.Left),
		cell(joinNonEmpty(r.Supplier, r.Reason), 2, align.Left),
	)
	if striped {
		out.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return out
}

func summaryRow(rows []dto.HistoryRowResponse) core.Row {
	entries, exits := decimal.Zero, decimal.Zero
	for _, r := range rows {
		switch entity.MovementKind(r.Kind) {
		case entity.MovementEntry:
			entries = entries.Add(r.Quantity)
		case entity.MovementExit:
			exits = exits.Add(r.Quantity)
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2})
	}
	return row.New(10).Add(
		col.New(6),
		col.New(2).Add(label(fmt.Sprintf("Movimentos: %d", len(rows)))),
		col.New(2).Add(label("Entradas: "+entries.String())),
		col.New(2).Add(label("Saídas: "+exits.String())),
	)
}

func kindLabel(kind string) string {
	switch entity.MovementKind(kind) {
	case entity.MovementEntry:
		return "Entrada"
	case entity.MovementExit:
		return "Saída"
	}
	return kind
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " / " + b
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
