package inventory

import (
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// AddResponsible agrega un responsable. Si r.ID es 0 se asigna con NextID.
// La unidad referenciada debe existir.
func AddResponsible(t *entity.Tables, r entity.ResponsibleParty, policy domain.NamePolicy) (*entity.Tables, entity.ResponsibleParty, error) {
	if r.ID == 0 {
		r.ID = NextID(responsibleIDs(t.Responsibles))
	}
	if err := checkResponsible(t, -1, r, policy); err != nil {
		return nil, entity.ResponsibleParty{}, err
	}
	out := t.Clone()
	out.Responsibles = append(out.Responsibles, r)
	return out, r, nil
}

// EditResponsible reemplaza los datos del responsable id.
func EditResponsible(t *entity.Tables, id int, r entity.ResponsibleParty, policy domain.NamePolicy) (*entity.Tables, error) {
	idx := responsibleIndex(t.Responsibles, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	r.ID = id
	if err := checkResponsible(t, idx, r, policy); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.Responsibles[idx] = r
	return out, nil
}

// DeleteResponsible elimina el responsable. Sus movimientos se conservan (el historial muestra vacío).
func DeleteResponsible(t *entity.Tables, id int) (*entity.Tables, error) {
	idx := responsibleIndex(t.Responsibles, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	out := t.Clone()
	out.Responsibles = append(out.Responsibles[:idx], out.Responsibles[idx+1:]...)
	return out, nil
}

// AddUnit agrega una unidad. Si u.ID es 0 se asigna con NextID.
func AddUnit(t *entity.Tables, u entity.Unit, policy domain.NamePolicy) (*entity.Tables, entity.Unit, error) {
	if u.ID == 0 {
		u.ID = NextID(unitIDs(t.Units))
	}
	if err := checkUnit(t, -1, u, policy); err != nil {
		return nil, entity.Unit{}, err
	}
	out := t.Clone()
	out.Units = append(out.Units, u)
	return out, u, nil
}

// EditUnit reemplaza los datos de la unidad id.
func EditUnit(t *entity.Tables, id int, u entity.Unit, policy domain.NamePolicy) (*entity.Tables, error) {
	idx := unitIndex(t.Units, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	u.ID = id
	if err := checkUnit(t, idx, u, policy); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.Units[idx] = u
	return out, nil
}

// DeleteUnit elimina la unidad. Responsables y movimientos que la referencian no se tocan.
func DeleteUnit(t *entity.Tables, id int) (*entity.Tables, error) {
	idx := unitIndex(t.Units, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	out := t.Clone()
	out.Units = append(out.Units[:idx], out.Units[idx+1:]...)
	return out, nil
}

func checkResponsible(t *entity.Tables, self int, r entity.ResponsibleParty, policy domain.NamePolicy) error {
	if strings.TrimSpace(r.Name) == "" || r.ID <= 0 {
		return domain.ErrInvalidInput
	}
	for i, existing := range t.Responsibles {
		if i == self {
			continue
		}
		if policy.Same(existing.Name, r.Name) {
			return domain.ErrDuplicateName
		}
		if existing.ID == r.ID {
			return domain.ErrDuplicateID
		}
	}
	if unitIndex(t.Units, r.UnitID) < 0 {
		return &domain.ReferenceError{Kind: "unidad", Name: strconv.Itoa(r.UnitID)}
	}
	return nil
}

func checkUnit(t *entity.Tables, self int, u entity.Unit, policy domain.NamePolicy) error {
	if strings.TrimSpace(u.Name) == "" || u.ID <= 0 {
		return domain.ErrInvalidInput
	}
	for i, existing := range t.Units {
		if i == self {
			continue
		}
		if policy.Same(existing.Name, u.Name) {
			return domain.ErrDuplicateName
		}
		if existing.ID == u.ID {
			return domain.ErrDuplicateID
		}
	}
	return nil
}

func responsibleIndex(list []entity.ResponsibleParty, id int) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func unitIndex(list []entity.Unit, id int) int {
	for i, u := range list {
		if u.ID == id {
			return i
		}
	}
	return -1
}

