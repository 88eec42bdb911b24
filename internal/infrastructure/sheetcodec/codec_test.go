package sheetcodec_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/sheetcodec"
)

func TestFold_QuitaAcentosYMayusculas(t *testing.T) {
	assert.Equal(t, "nome do responsavel", sheetcodec.Fold("  Nome do Responsável "))
	assert.Equal(t, "saida", sheetcodec.Fold("SAÍDA"))
	assert.Equal(t, "razao", sheetcodec.Fold("Razão"))
}

func TestDecode_EncabezadosSinAcentoYOrdenDistinto(t *testing.T) {
	rows := [][]string{
		{"nome do produto", "CATEGORIA", "id produto", "quantidade em estoque", "unidade de medida"},
		{"Papel A4", "Escritório", "1", "10,5", "cx"},
		{"", "", "", "", ""},
		{"Caneta", "", "2.0", "", "un"},
	}
	tables := entity.NewTables()
	missing, err := sheetcodec.Decode(entity.TableProducts, rows, tables)
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.Len(t, tables.Products, 2)
	assert.Equal(t, 1, tables.Products[0].ID)
	assert.Equal(t, "Papel A4", tables.Products[0].Name)
	assert.True(t, decimal.RequireFromString("10.5").Equal(tables.Products[0].StockQty))
	assert.Equal(t, 2, tables.Products[1].ID)
	assert.True(t, tables.Products[1].StockQty.IsZero())
}

func TestDecode_MovimientosCentinelaYFechas(t *testing.T) {
	rows := [][]string{
		{"ID Produto", "ID Responsavel", "ID Unidade", "Tipo", "Quantidade", "Fornecedor", "Razao", "Data"},
		{"1", "1", "1", "Entrada", "3", "ACME", "compra", "2024-03-20"},
		{"DESCONHECIDO", "1", "1", "Saída", "1", "", "uso", "45371"},
		{"UNKNOWN", "2", "1", "saida", "2", "", "", "sem data"},
	}
	tables := entity.NewTables()
	_, err := sheetcodec.Decode(entity.TableMovements, rows, tables)
	require.NoError(t, err)
	require.Len(t, tables.Movements, 3)

	m := tables.Movements
	assert.Equal(t, entity.KnownProduct(1), m[0].Product)
	assert.Equal(t, entity.MovementEntry, m[0].Kind)
	assert.Equal(t, "compra", m[0].Reason)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), m[0].Date)

	assert.True(t, m[1].Product.Unknown)
	assert.Equal(t, entity.MovementExit, m[1].Kind)
	assert.Equal(t, "2024-03-20", m[1].Date.Format("2006-01-02"), "número de serie de Excel")

	assert.True(t, m[2].Product.Unknown)
	assert.True(t, m[2].Date.IsZero())
	assert.Equal(t, "sem data", m[2].DateRaw)
}

func TestDecode_UsuariosSinColumnaObligatoria(t *testing.T) {
	rows := [][]string{
		{"username", "nivel_acesso"},
		{"alice", "Gerente"},
	}
	tables := entity.NewTables()
	missing, err := sheetcodec.Decode(entity.TableUsers, rows, tables)
	require.NoError(t, err)
	assert.Equal(t, []string{sheetcodec.ColPassword}, missing)
	assert.Equal(t, missing, tables.MissingColumns[entity.TableUsers])
	require.Len(t, tables.Users, 1)
	assert.Equal(t, entity.LevelManager, tables.Users[0].Level)
}

func TestDecode_HojaVaciaLimpiaFaltantes(t *testing.T) {
	tables := entity.NewTables()
	tables.MissingColumns[entity.TableUsers] = []string{"senha"}
	tables.Users = []entity.User{{Username: "x"}}

	missing, err := sheetcodec.Decode(entity.TableUsers, nil, tables)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Empty(t, tables.Users)
	assert.NotContains(t, tables.MissingColumns, entity.TableUsers)
}

func TestEncodeDecode_ConservaContenido(t *testing.T) {
	src := entity.NewTables()
	src.Movements = []entity.Movement{
		{Product: entity.KnownProduct(3), ResponsibleID: 1, UnitID: 2, Kind: entity.MovementExit,
			Quantity: decimal.RequireFromString("1.25"), Supplier: "", Reason: "uso", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Product: entity.UnknownProduct(), ResponsibleID: 1, UnitID: 2, Kind: entity.MovementEntry,
			Quantity: decimal.NewFromInt(4), DateRaw: "ontem"},
	}
	src.Users = []entity.User{{Username: "bob", Password: "1234", Level: entity.LevelViewer}}

	for _, name := range []entity.TableName{entity.TableMovements, entity.TableUsers} {
		rows, err := sheetcodec.Encode(name, src)
		require.NoError(t, err)
		assert.Equal(t, sheetcodec.Headers(name), rows[0])

		dst := entity.NewTables()
		_, err = sheetcodec.Decode(name, rows, dst)
		require.NoError(t, err)
		assert.Equal(t, src.Len(name), dst.Len(name))
	}

	rows, err := sheetcodec.Encode(entity.TableMovements, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2", "Saída", "1.25", "", "uso", "2024-01-02"}, rows[1])
	assert.Equal(t, "UNKNOWN", rows[2][0])
	assert.Equal(t, "ontem", rows[2][7])

	rows, err = sheetcodec.Encode(entity.TableUsers, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "1234", "Visualizador"}, rows[1])
}

func TestParseInt(t *testing.T) {
	n, ok := sheetcodec.ParseInt(" 7 ")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = sheetcodec.ParseInt("7.5")
	assert.False(t, ok)
	_, ok = sheetcodec.ParseInt("abc")
	assert.False(t, ok)
}
