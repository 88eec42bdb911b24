package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/inventory"
)

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// sampleTables catálogo mínimo: dos productos, un responsable y una unidad.
func sampleTables() *entity.Tables {
	t := entity.NewTables()
	t.Products = []entity.Product{
		{ID: 1, Name: "Papel A4", StockQty: decimal.NewFromInt(10), Unit: "cx", Category: "Escritório"},
		{ID: 2, Name: "Caneta", StockQty: decimal.NewFromInt(5), Unit: "un", Category: "Escritório"},
	}
	t.Units = []entity.Unit{{ID: 1, Name: "Sede", City: "Recife", State: "PE"}}
	t.Responsibles = []entity.ResponsibleParty{{ID: 1, Name: "Maria", UnitID: 1, Role: "Almoxarife"}}
	return t
}

func movement(product string, kind entity.MovementKind, qty int64) inventory.MovementInput {
	return inventory.MovementInput{
		ProductName:     product,
		ResponsibleName: "Maria",
		UnitName:        "Sede",
		Kind:            kind,
		Quantity:        decimal.NewFromInt(qty),
		Date:            testDay,
	}
}

func TestApplyMovement_EntradaSumaYAgregaFila(t *testing.T) {
	in := sampleTables()
	out, err := inventory.ApplyMovement(in, movement("Papel A4", entity.MovementEntry, 4))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(14).Equal(out.Products[0].StockQty))
	require.Len(t, out.Movements, 1)
	m := out.Movements[0]
	assert.Equal(t, entity.KnownProduct(1), m.Product)
	assert.Equal(t, 1, m.ResponsibleID)
	assert.Equal(t, 1, m.UnitID)

	// la entrada no se modifica
	assert.True(t, decimal.NewFromInt(10).Equal(in.Products[0].StockQty))
	assert.Empty(t, in.Movements)
}

func TestApplyMovement_SalidaPermiteStockNegativo(t *testing.T) {
	out, err := inventory.ApplyMovement(sampleTables(), movement("Caneta", entity.MovementExit, 8))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-3).Equal(out.Products[1].StockQty))
}

func TestApplyMovement_ReferenciasInexistentes(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*inventory.MovementInput)
		kind string
	}{
		{"producto", func(in *inventory.MovementInput) { in.ProductName = "Grampeador" }, "producto"},
		{"producto con otra caja", func(in *inventory.MovementInput) { in.ProductName = "papel a4" }, "producto"},
		{"responsable", func(in *inventory.MovementInput) { in.ResponsibleName = "João" }, "responsable"},
		{"unidad", func(in *inventory.MovementInput) { in.UnitName = "Filial" }, "unidad"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := movement("Papel A4", entity.MovementEntry, 1)
			tc.mut(&in)
			_, err := inventory.ApplyMovement(sampleTables(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrReferenceNotFound))
			var refErr *domain.ReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, tc.kind, refErr.Kind)
		})
	}
}

func TestApplyMovement_CantidadNoPositiva(t *testing.T) {
	for _, qty := range []int64{0, -2} {
		_, err := inventory.ApplyMovement(sampleTables(), movement("Papel A4", entity.MovementEntry, qty))
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "cantidad %d", qty)
	}
}

func TestApplyMovement_TipoYFechaObligatorios(t *testing.T) {
	in := movement("Papel A4", "TRANSFER", 1)
	_, err := inventory.ApplyMovement(sampleTables(), in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	in = movement("Papel A4", entity.MovementEntry, 1)
	in.Date = time.Time{}
	_, err = inventory.ApplyMovement(sampleTables(), in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// El stock final no depende del orden en que se aplican los movimientos
// y coincide con la proyección calculada desde el libro.
func TestApplyMovement_StockAsociativo(t *testing.T) {
	seqA := []inventory.MovementInput{
		movement("Papel A4", entity.MovementEntry, 7),
		movement("Papel A4", entity.MovementExit, 3),
		movement("Papel A4", entity.MovementExit, 12),
		movement("Papel A4", entity.MovementEntry, 1),
	}
	seqB := []inventory.MovementInput{seqA[2], seqA[0], seqA[3], seqA[1]}

	apply := func(seq []inventory.MovementInput) *entity.Tables {
		tables := sampleTables()
		for _, in := range seq {
			var err error
			tables, err = inventory.ApplyMovement(tables, in)
			require.NoError(t, err)
		}
		return tables
	}
	a, b := apply(seqA), apply(seqB)

	want := decimal.NewFromInt(10 + 7 - 3 - 12 + 1)
	assert.True(t, want.Equal(a.Products[0].StockQty))
	assert.True(t, want.Equal(b.Products[0].StockQty))
	assert.True(t, want.Equal(inventory.ProjectedStock(decimal.NewFromInt(10), a.Movements, 1)))
	assert.True(t, decimal.NewFromInt(5).Equal(a.Products[1].StockQty), "otros productos no cambian")
}

func TestDeleteProduct_ReapuntaMovimientosAlCentinela(t *testing.T) {
	tables := sampleTables()
	var err error
	for _, in := range []inventory.MovementInput{
		movement("Papel A4", entity.MovementEntry, 2),
		movement("Caneta", entity.MovementEntry, 1),
		movement("Papel A4", entity.MovementExit, 1),
	} {
		tables, err = inventory.ApplyMovement(tables, in)
		require.NoError(t, err)
	}

	out, repointed, err := inventory.DeleteProduct(tables, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repointed)
	assert.Len(t, out.Products, 1)
	require.Len(t, out.Movements, 3, "los movimientos nunca se borran")
	assert.True(t, out.Movements[0].Product.Unknown)
	assert.Equal(t, entity.KnownProduct(2), out.Movements[1].Product)
	assert.True(t, out.Movements[2].Product.Unknown)

	rows := inventory.BuildHistory(out.Movements, out.Products, out.Responsibles, out.Units, inventory.HistoryFilter{})
	require.Len(t, rows, 3)
	assert.Equal(t, entity.UnknownProductName, rows[0].ProductName)
	assert.Equal(t, "Caneta", rows[1].ProductName)
	assert.Equal(t, entity.UnknownProductName, rows[2].ProductName)
	assert.Equal(t, "UNKNOWN", rows[2].Product.String())
}

func TestDeleteProduct_Inexistente(t *testing.T) {
	_, _, err := inventory.DeleteProduct(sampleTables(), 99)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestAddProduct_Duplicados(t *testing.T) {
	tables := sampleTables()

	_, err := inventory.AddProduct(tables, entity.Product{ID: 3, Name: "Caneta"}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = inventory.AddProduct(tables, entity.Product{ID: 2, Name: "Lápis"}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateID))
}

// Con la política por defecto una variante de mayúsculas es otro producto;
// con la política insensible colisiona.
func TestAddProduct_VarianteDeMayusculas(t *testing.T) {
	tables := sampleTables()

	out, err := inventory.AddProduct(tables, entity.Product{ID: 3, Name: "CANETA"}, domain.NameCaseSensitive)
	require.NoError(t, err)
	assert.Len(t, out.Products, 3)

	_, err = inventory.AddProduct(tables, entity.Product{ID: 3, Name: "CANETA "}, domain.NameCaseInsensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))
}

func TestAddProduct_Validaciones(t *testing.T) {
	tables := sampleTables()
	_, err := inventory.AddProduct(tables, entity.Product{ID: 3, Name: "  "}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.AddProduct(tables, entity.Product{ID: 0, Name: "Lápis"}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.AddProduct(tables, entity.Product{ID: 3, Name: "Lápis", StockQty: decimal.NewFromInt(-1)}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
}

func TestEditProduct_MismoNombrePermitido(t *testing.T) {
	tables := sampleTables()
	out, err := inventory.EditProduct(tables, 2, inventory.ProductChanges{
		Name: "Caneta", StockQty: decimal.NewFromInt(9), Unit: "cx", Category: "Papelaria",
	}, domain.NameCaseSensitive)
	require.NoError(t, err)
	assert.Equal(t, "cx", out.Products[1].Unit)
	assert.True(t, decimal.NewFromInt(9).Equal(out.Products[1].StockQty))
}

func TestEditProduct_ChocaConOtroProducto(t *testing.T) {
	_, err := inventory.EditProduct(sampleTables(), 2, inventory.ProductChanges{Name: "Papel A4"}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = inventory.EditProduct(sampleTables(), 42, inventory.ProductChanges{Name: "X"}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestEditProduct_ConservaStockNegativo(t *testing.T) {
	tables, err := inventory.ApplyMovement(sampleTables(), movement("Caneta", entity.MovementExit, 8))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(-3).Equal(tables.Products[1].StockQty))

	out, err := inventory.EditProduct(tables, 2, inventory.ProductChanges{
		Name: "Caneta Azul", StockQty: decimal.NewFromInt(-3), Unit: "un",
	}, domain.NameCaseSensitive)
	require.NoError(t, err, "el stock negativo solo se controla al mover")
	assert.Equal(t, "Caneta Azul", out.Products[1].Name)
	assert.True(t, decimal.NewFromInt(-3).Equal(out.Products[1].StockQty))

	_, err = inventory.EditProduct(tables, 2, inventory.ProductChanges{
		Name: "Caneta", StockQty: decimal.NewFromInt(-5),
	}, domain.NameCaseSensitive)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "no se puede fijar un stock negativo nuevo")
}

// Renombrar un producto no toca el libro: el historial muestra el nombre vigente.
func TestEditProduct_HistorialUsaNombreVigente(t *testing.T) {
	tables, err := inventory.ApplyMovement(sampleTables(), movement("Caneta", entity.MovementEntry, 1))
	require.NoError(t, err)
	tables, err = inventory.EditProduct(tables, 2, inventory.ProductChanges{Name: "Caneta Azul", StockQty: decimal.NewFromInt(6)}, domain.NameCaseSensitive)
	require.NoError(t, err)

	rows := inventory.BuildHistory(tables.Movements, tables.Products, tables.Responsibles, tables.Units, inventory.HistoryFilter{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Caneta Azul", rows[0].ProductName)
}

func TestCountMovements(t *testing.T) {
	tables, err := inventory.ApplyMovement(sampleTables(), movement("Caneta", entity.MovementEntry, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, inventory.CountMovements(tables.Movements, 2))
	assert.Equal(t, 0, inventory.CountMovements(tables.Movements, 1))
}
