package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-planilhas/internal/application/inventory"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
)

type fakeRecorder struct {
	movements map[entity.MovementKind]int
}

func (f *fakeRecorder) MovementApplied(kind entity.MovementKind) { f.movements[kind]++ }
func (f *fakeRecorder) Login(string)                              {}

var operator = access.Principal{Username: "operador", Level: entity.LevelOperator}

func fixedClock() time.Time { return time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC) }

func setup(t *testing.T) (*appinventory.RegisterMovementUseCase, *memory.Gateway, *fakeRecorder) {
	t.Helper()
	seed := entity.NewTables()
	seed.Products = []entity.Product{{ID: 1, Name: "Papel A4", StockQty: decimal.NewFromInt(10)}}
	seed.Responsibles = []entity.ResponsibleParty{{ID: 1, Name: "Maria", UnitID: 1}}
	seed.Units = []entity.Unit{{ID: 1, Name: "Sede"}}
	gw := memory.NewGateway(seed)
	rec := &fakeRecorder{movements: map[entity.MovementKind]int{}}
	uc := appinventory.NewRegisterMovementUseCase(store.New(gw, zerolog.Nop()), rec, fixedClock, zerolog.Nop())
	return uc, gw, rec
}

func request(kind string, qty int64) dto.RegisterMovementRequest {
	return dto.RegisterMovementRequest{
		ProductName:     "Papel A4",
		ResponsibleName: "Maria",
		UnitName:        "Sede",
		Kind:            kind,
		Quantity:        decimal.NewFromInt(qty),
	}
}

func TestRegisterMovement_EntradaConFechaDeHoy(t *testing.T) {
	uc, gw, rec := setup(t)

	res, err := uc.RegisterMovement(context.Background(), operator, request("ENTRY", 5))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", res.Date)
	assert.True(t, res.StockQtyAfter.Equal(decimal.NewFromInt(15)))

	snap := gw.Snapshot()
	require.Len(t, snap.Movements, 1)
	assert.Equal(t, 1, snap.Movements[0].UnitID)
	assert.True(t, snap.Products[0].StockQty.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 1, rec.movements[entity.MovementEntry])
}

func TestRegisterMovement_SalidaPuedeDejarNegativo(t *testing.T) {
	uc, gw, _ := setup(t)

	req := request("exit", 12)
	req.Date = "2024-01-02"
	res, err := uc.RegisterMovement(context.Background(), operator, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", res.Date)
	assert.True(t, gw.Snapshot().Products[0].StockQty.Equal(decimal.NewFromInt(-2)))
}

func TestRegisterMovement_Errores(t *testing.T) {
	uc, gw, _ := setup(t)
	ctx := context.Background()

	viewer := access.Principal{Username: "v", Level: entity.LevelViewer}
	_, err := uc.RegisterMovement(ctx, viewer, request("ENTRY", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterMovement(ctx, operator, request("ENTRY", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req := request("ENTRY", 1)
	req.UnitName = "Filial"
	_, err = uc.RegisterMovement(ctx, operator, req)
	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "Filial", refErr.Name)

	req = request("ENTRY", 1)
	req.Date = "15/03/2024"
	_, err = uc.RegisterMovement(ctx, operator, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, gw.Snapshot().Movements)
}
