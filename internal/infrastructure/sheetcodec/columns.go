// Package sheetcodec traduce entre las filas de texto de una hoja (encabezado + datos)
// y las entidades del dominio. Lo comparten los backends de planilla local y en la nube.
package sheetcodec

import "github.com/jhoicas/inventario-planilhas/internal/domain/entity"

// Encabezados tal como se escriben en las planillas.
const (
	ColProductID   = "ID Produto"
	ColProductName = "Nome do Produto"
	ColStockQty    = "Quantidade em Estoque"
	ColMeasureUnit = "Unidade de Medida"
	ColCategory    = "Categoria"

	ColResponsibleID   = "ID Responsavel"
	ColResponsibleName = "Nome do Responsável"
	ColUnitID          = "ID Unidade"
	ColRole            = "Cargo"
	ColPhone           = "Telefone"

	ColUnitName = "Nome da Unidade"
	ColAddress  = "Endereço"
	ColCity     = "Cidade"
	ColState    = "Estado"

	ColUsername = "username"
	ColPassword = "senha"
	ColLevel    = "nivel_acesso"

	ColKind     = "Tipo"
	ColQuantity = "Quantidade"
	ColSupplier = "Fornecedor"
	ColReason   = "Razão"
	ColDate     = "Data"
)

type layout struct {
	headers  []string
	required []string
}

var layouts = map[entity.TableName]layout{
	entity.TableProducts: {
		headers:  []string{ColProductID, ColProductName, ColStockQty, ColMeasureUnit, ColCategory},
		required: []string{ColProductID, ColProductName},
	},
	entity.TableMovements: {
		headers:  []string{ColProductID, ColResponsibleID, ColUnitID, ColKind, ColQuantity, ColSupplier, ColReason, ColDate},
		required: []string{ColProductID, ColKind, ColQuantity},
	},
	entity.TableResponsibles: {
		headers:  []string{ColResponsibleID, ColResponsibleName, ColUnitID, ColRole, ColPhone},
		required: []string{ColResponsibleID, ColResponsibleName},
	},
	entity.TableUnits: {
		headers:  []string{ColUnitID, ColUnitName, ColAddress, ColCity, ColState},
		required: []string{ColUnitID, ColUnitName},
	},
	entity.TableUsers: {
		headers:  []string{ColUsername, ColPassword, ColLevel},
		required: []string{ColUsername, ColPassword, ColLevel},
	},
}

// Headers encabezados que se escriben para la tabla.
func Headers(name entity.TableName) []string {
	return append([]string(nil), layouts[name].headers...)
}

// Required encabezados sin los cuales la tabla se considera incompleta.
func Required(name entity.TableName) []string {
	return append([]string(nil), layouts[name].required...)
}

var numericColumns = map[string]bool{
	Fold(ColProductID): true, Fold(ColResponsibleID): true, Fold(ColUnitID): true,
	Fold(ColStockQty): true, Fold(ColQuantity): true,
}

// Numeric indica si la columna guarda números (ids y cantidades) y debe escribirse como celda numérica.
func Numeric(header string) bool {
	return numericColumns[Fold(header)]
}
