package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// NextID devuelve el menor id positivo libre: rellena huecos en [1, max] antes de usar max+1.
// Los ids no positivos (celdas vacías o no numéricas al leer) se ignoran.
func NextID(ids []int) int {
	present := make(map[int]struct{}, len(ids))
	maxID := 0
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		present[id] = struct{}{}
		if id > maxID {
			maxID = id
		}
	}
	for id := 1; id <= maxID; id++ {
		if _, ok := present[id]; !ok {
			return id
		}
	}
	return maxID + 1
}

// NextIDFor aplica NextID a la columna de id de la tabla indicada.
// Movimientos y usuarios no tienen columna de id.
func NextIDFor(t *entity.Tables, name entity.TableName) (int, error) {
	switch name {
	case entity.TableProducts:
		return NextID(productIDs(t.Products)), nil
	case entity.TableResponsibles:
		return NextID(responsibleIDs(t.Responsibles)), nil
	case entity.TableUnits:
		return NextID(unitIDs(t.Units)), nil
	}
	return 0, fmt.Errorf("%w: la tabla %q no tiene columna de id", domain.ErrInvalidInput, name)
}

func productIDs(products []entity.Product) []int {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func responsibleIDs(list []entity.ResponsibleParty) []int {
	ids := make([]int, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	return ids
}

func unitIDs(list []entity.Unit) []int {
	ids := make([]int, 0, len(list))
	for _, u := range list {
		ids = append(ids, u.ID)
	}
	return ids
}
