package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/application/report"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
)

type capturePDF struct {
	got dto.HistoryReportDTO
}

func (c *capturePDF) GenerateHistory(r dto.HistoryReportDTO) ([]byte, error) {
	c.got = r
	return []byte("%PDF-fake"), nil
}

var operator = access.Principal{Username: "operador", Level: entity.LevelOperator}

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func setup(t *testing.T, pdf *capturePDF) *report.HistoryUseCase {
	t.Helper()
	seed := entity.NewTables()
	seed.Products = []entity.Product{{ID: 1, Name: "Papel A4"}}
	seed.Responsibles = []entity.ResponsibleParty{{ID: 1, Name: "Maria", UnitID: 1}}
	seed.Units = []entity.Unit{{ID: 1, Name: "Sede"}, {ID: 2, Name: "Filial"}}
	seed.Movements = []entity.Movement{
		{Product: entity.KnownProduct(1), ResponsibleID: 1, UnitID: 1, Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(5), Date: day(10)},
		{Product: entity.UnknownProduct(), ResponsibleID: 9, UnitID: 2, Kind: entity.MovementExit, Quantity: decimal.NewFromInt(1), Date: day(12)},
		{Product: entity.KnownProduct(1), ResponsibleID: 1, UnitID: 1, Kind: entity.MovementExit, Quantity: decimal.NewFromInt(2), DateRaw: "ontem"},
		{Product: entity.KnownProduct(1), ResponsibleID: 1, UnitID: 1, Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(3), Date: day(11)},
	}
	s := store.New(memory.NewGateway(seed), zerolog.Nop())
	var gen ports.HistoryPDFGenerator
	if pdf != nil {
		gen = pdf
	}
	return report.NewHistoryUseCase(s, gen, func() time.Time { return day(20) })
}

func TestHistory_LeftJoinYOrdenDeRegistro(t *testing.T) {
	uc := setup(t, nil)

	res, err := uc.History(context.Background(), operator, dto.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)
	assert.Equal(t, "UNKNOWN", res.Items[1].ProductID)
	assert.Equal(t, "UNKNOWN PRODUCT", res.Items[1].ProductName)
	assert.Empty(t, res.Items[1].ResponsibleName)
	assert.Equal(t, "ontem", res.Items[2].Date)
}

func TestHistory_FiltrosYOrdenPorFecha(t *testing.T) {
	uc := setup(t, nil)
	ctx := context.Background()

	res, err := uc.History(ctx, operator, dto.HistoryQuery{Unit: "Sede", From: "2024-03-10", To: "2024-03-11", Sort: "desc"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "2024-03-11", res.Items[0].Date)
	assert.Equal(t, "2024-03-10", res.Items[1].Date)

	res, err = uc.History(ctx, operator, dto.HistoryQuery{Sort: "asc"})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)
	assert.Equal(t, "ontem", res.Items[3].Date, "sin fecha al final")

	res, err = uc.History(ctx, operator, dto.HistoryQuery{From: "2024-03-12", To: "2024-03-10"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestHistory_Unidades(t *testing.T) {
	uc := setup(t, nil)
	units, err := uc.Units(context.Background(), operator)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sede", "Filial"}, units)
}

func TestHistory_SoloConPermiso(t *testing.T) {
	uc := setup(t, nil)
	_, err := uc.PDF(context.Background(), operator, dto.HistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin generador configurado")

	viewer := access.Principal{Username: "v", Level: entity.LevelViewer}
	_, err = uc.History(context.Background(), viewer, dto.HistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHistory_PDFConFiltros(t *testing.T) {
	pdf := &capturePDF{}
	uc := setup(t, pdf)

	out, err := uc.PDF(context.Background(), operator, dto.HistoryQuery{Unit: "Filial"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Len(t, pdf.got.Rows, 1)
	assert.Equal(t, "Unidade: Filial", pdf.got.Filters)
	assert.Equal(t, "operador", pdf.got.GeneratedBy)
}
