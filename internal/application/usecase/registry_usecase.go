package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/inventory"
)

// RegistryUseCase ABM de responsables y unidades.
// Los listados también están abiertos a quien registra movimientos, que elige por nombre.
type RegistryUseCase struct {
	store  ports.TableStore
	policy domain.NamePolicy
	log    zerolog.Logger
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(store ports.TableStore, policy domain.NamePolicy, log zerolog.Logger) *RegistryUseCase {
	return &RegistryUseCase{store: store, policy: policy, log: log.With().Str("component", "registry").Logger()}
}

// ListResponsibles lista responsables con el nombre de su unidad (vacío si la unidad ya no existe).
func (uc *RegistryUseCase) ListResponsibles(ctx context.Context, p access.Principal) ([]dto.ResponsibleResponse, error) {
	if err := p.CanAny(access.ActionManageRegistry, access.ActionApplyMovement); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableResponsibles, entity.TableUnits)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResponsibleResponse, 0, len(t.Responsibles))
	for _, r := range t.Responsibles {
		out = append(out, toResponsibleResponse(r, t.Units))
	}
	return out, nil
}

// CreateResponsible agrega un responsable; la unidad debe existir.
func (uc *RegistryUseCase) CreateResponsible(ctx context.Context, p access.Principal, in dto.ResponsibleRequest) (*dto.ResponsibleResponse, error) {
	if err := p.Can(access.ActionManageRegistry); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableResponsibles, entity.TableUnits)
	if err != nil {
		return nil, err
	}
	r := entity.ResponsibleParty{
		Name:   strings.TrimSpace(in.Name),
		UnitID: in.UnitID,
		Role:   strings.TrimSpace(in.Role),
		Phone:  strings.TrimSpace(in.Phone),
	}
	if in.ID != nil {
		r.ID = *in.ID
	}
	updated, created, err := inventory.AddResponsible(t, r, uc.policy)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableResponsibles); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Int("responsible_id", created.ID).Msg("responsable agregado")
	resp := toResponsibleResponse(created, updated.Units)
	return &resp, nil
}

// UpdateResponsible reemplaza los datos del responsable id.
func (uc *RegistryUseCase) UpdateResponsible(ctx context.Context, p access.Principal, id int, in dto.ResponsibleRequest) (*dto.ResponsibleResponse, error) {
	if err := p.Can(access.ActionManageRegistry); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableResponsibles, entity.TableUnits)
	if err != nil {
		return nil, err
	}
	r := entity.ResponsibleParty{
		ID:     id,
		Name:   strings.TrimSpace(in.Name),
		UnitID: in.UnitID,
		Role:   strings.TrimSpace(in.Role),
		Phone:  strings.TrimSpace(in.Phone),
	}
	updated, err := inventory.EditResponsible(t, id, r, uc.policy)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableResponsibles); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Int("responsible_id", id).Msg("responsable actualizado")
	resp := toResponsibleResponse(r, updated.Units)
	return &resp, nil
}

// DeleteResponsible elimina el responsable; sus movimientos quedan intactos.
func (uc *RegistryUseCase) DeleteResponsible(ctx context.Context, p access.Principal, id int) error {
	if err := p.Can(access.ActionManageRegistry); err != nil {
		return err
	}
	t, err := uc.store.Tables(ctx, entity.TableResponsibles)
	if err != nil {
		return err
	}
	updated, err := inventory.DeleteResponsible(t, id)
	if err != nil {
		return err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableResponsibles); err != nil {
		return err
	}
	uc.log.Info().Str("user", p.Username).Int("responsible_id", id).Msg("responsable eliminado")
	return nil
}

// ListUnits lista las unidades.
func (uc *RegistryUseCase) ListUnits(ctx context.Context, p access.Principal) ([]dto.UnitResponse, error) {
	if err := p.CanAny(access.ActionManageRegistry, access.ActionApplyMovement); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableUnits)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(t.Units))
	for _, u := range t.Units {
		out = append(out, toUnitResponse(u))
	}
	return out, nil
}

// CreateUnit agrega una unidad.
func (uc *RegistryUseCase) CreateUnit(ctx context.Context, p access.Principal, in dto.UnitRequest) (*dto.UnitResponse, error) {
	if err := p.Can(access.ActionManageRegistry); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableUnits)
	if err != nil {
		return nil, err
	}
	u := unitFromRequest(in)
	if in.ID != nil {
		u.ID = *in.ID
	}
	updated, created, err := inventory.AddUnit(t, u, uc.policy)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableUnits); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Int("unit_id", created.ID).Msg("unidad agregada")
	resp := toUnitResponse(created)
	return &resp, nil
}

// UpdateUnit reemplaza los datos de la unidad id.
func (uc *RegistryUseCase) UpdateUnit(ctx context.Context, p access.Principal, id int, in dto.UnitRequest) (*dto.UnitResponse, error) {
	if err := p.Can(access.ActionManageRegistry); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableUnits)
	if err != nil {
		return nil, err
	}
	u := unitFromRequest(in)
	u.ID = id
	updated, err := inventory.EditUnit(t, id, u, uc.policy)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableUnits); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Int("unit_id", id).Msg("unidad actualizada")
	resp := toUnitResponse(u)
	return &resp, nil
}

// DeleteUnit elimina la unidad; responsables y movimientos que la referencian no cambian.
func (uc *RegistryUseCase) DeleteUnit(ctx context.Context, p access.Principal, id int) error {
	if err := p.Can(access.ActionManageRegistry); err != nil {
		return err
	}
	t, err := uc.store.Tables(ctx, entity.TableUnits)
	if err != nil {
		return err
	}
	updated, err := inventory.DeleteUnit(t, id)
	if err != nil {
		return err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableUnits); err != nil {
		return err
	}
	uc.log.Info().Str("user", p.Username).Int("unit_id", id).Msg("unidad eliminada")
	return nil
}

func unitFromRequest(in dto.UnitRequest) entity.Unit {
	return entity.Unit{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
	}
}

func toResponsibleResponse(r entity.ResponsibleParty, units []entity.Unit) dto.ResponsibleResponse {
	resp := dto.ResponsibleResponse{ID: r.ID, Name: r.Name, UnitID: r.UnitID, Role: r.Role, Phone: r.Phone}
	for _, u := range units {
		if u.ID == r.UnitID {
			resp.UnitName = u.Name
			break
		}
	}
	return resp
}

func toUnitResponse(u entity.Unit) dto.UnitResponse {
	return dto.UnitResponse{ID: u.ID, Name: u.Name, Address: u.Address, City: u.City, State: u.State}
}
