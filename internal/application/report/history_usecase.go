// Package report arma las vistas de lectura del libro: historial filtrado, unidades y PDF.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/inventory"
)

var historyTables = []entity.TableName{
	entity.TableMovements, entity.TableProducts, entity.TableResponsibles, entity.TableUnits,
}

// HistoryUseCase construye el historial desnormalizado de movimientos.
type HistoryUseCase struct {
	store ports.TableStore
	pdf   ports.HistoryPDFGenerator
	clock ports.Clock
}

// NewHistoryUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewHistoryUseCase(store ports.TableStore, pdf ports.HistoryPDFGenerator, clock ports.Clock) *HistoryUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &HistoryUseCase{store: store, pdf: pdf, clock: clock}
}

// History devuelve una página del historial filtrado. Sin sort se conserva el orden de registro.
func (uc *HistoryUseCase) History(ctx context.Context, p access.Principal, q dto.HistoryQuery) (*dto.HistoryResponse, error) {
	rows, err := uc.rows(ctx, p, q)
	if err != nil {
		return nil, err
	}
	page := q.PageRequest
	page.DefaultPage()
	from, to := page.Slice(len(rows))
	out := &dto.HistoryResponse{
		Items: make([]dto.HistoryRowResponse, 0, to-from),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(rows)},
	}
	for _, r := range rows[from:to] {
		out.Items = append(out.Items, toHistoryRow(r))
	}
	return out, nil
}

// Units nombres de unidad presentes en el historial completo, para el selector de filtro.
func (uc *HistoryUseCase) Units(ctx context.Context, p access.Principal) ([]string, error) {
	rows, err := uc.rows(ctx, p, dto.HistoryQuery{})
	if err != nil {
		return nil, err
	}
	names := inventory.HistoryUnitNames(rows)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// PDF exporta el historial filtrado completo (sin paginar).
func (uc *HistoryUseCase) PDF(ctx context.Context, p access.Principal, q dto.HistoryQuery) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: exportación PDF no configurada", domain.ErrInvalidInput)
	}
	rows, err := uc.rows(ctx, p, q)
	if err != nil {
		return nil, err
	}
	report := dto.HistoryReportDTO{
		Title:       "Histórico de Movimentações",
		GeneratedAt: uc.clock().Format("2006-01-02 15:04"),
		GeneratedBy: p.Username,
		Filters:     describeFilters(q),
		Rows:        make([]dto.HistoryRowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, toHistoryRow(r))
	}
	return uc.pdf.GenerateHistory(report)
}

func (uc *HistoryUseCase) rows(ctx context.Context, p access.Principal, q dto.HistoryQuery) ([]inventory.HistoryRow, error) {
	if err := p.Can(access.ActionViewHistory); err != nil {
		return nil, err
	}
	filter, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, historyTables...)
	if err != nil {
		return nil, err
	}
	rows := inventory.BuildHistory(t.Movements, t.Products, t.Responsibles, t.Units, filter)
	sortRows(rows, q.Sort)
	return rows, nil
}

func toFilter(q dto.HistoryQuery) (inventory.HistoryFilter, error) {
	f := inventory.HistoryFilter{Unit: q.Unit}
	if q.From != "" {
		d, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return f, fmt.Errorf("%w: fecha desde %q", domain.ErrInvalidInput, q.From)
		}
		f.From = &d
	}
	if q.To != "" {
		d, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return f, fmt.Errorf("%w: fecha hasta %q", domain.ErrInvalidInput, q.To)
		}
		f.To = &d
	}
	return f, nil
}

// sortRows ordena por fecha; las filas sin fecha legible quedan al final en ambos sentidos.
func sortRows(rows []inventory.HistoryRow, order string) {
	if order != "asc" && order != "desc" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Date, rows[j].Date
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		if order == "desc" {
			return a.After(b)
		}
		return a.Before(b)
	})
}

func describeFilters(q dto.HistoryQuery) string {
	var parts []string
	unit := strings.TrimSpace(q.Unit)
	if unit == "" || unit == inventory.AllUnits {
		parts = append(parts, "Unidade: todas")
	} else {
		parts = append(parts, "Unidade: "+unit)
	}
	if q.From != "" || q.To != "" {
		parts = append(parts, fmt.Sprintf("Período: %s a %s", orDash(q.From), orDash(q.To)))
	}
	return strings.Join(parts, " | ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func toHistoryRow(r inventory.HistoryRow) dto.HistoryRowResponse {
	date := r.DateRaw
	if !r.Date.IsZero() {
		date = r.Date.Format("2006-01-02")
	}
	return dto.HistoryRowResponse{
		ProductID:       r.Product.String(),
		ProductName:     r.ProductName,
		ResponsibleID:   r.ResponsibleID,
		ResponsibleName: r.ResponsibleName,
		UnitID:          r.UnitID,
		UnitName:        r.UnitName,
		Kind:            string(r.Kind),
		Quantity:        r.Quantity,
		Supplier:        r.Supplier,
		Reason:          r.Reason,
		Date:            date,
	}
}
