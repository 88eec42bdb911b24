package usecase

import (
	"context"

	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
)

// StoreUseCase expone el estado del almacén y el reintento de escrituras pendientes.
type StoreUseCase struct {
	store ports.TableStore
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(store ports.TableStore) *StoreUseCase {
	return &StoreUseCase{store: store}
}

// Status estado del almacén: backend, tablas en caché y pendientes.
func (uc *StoreUseCase) Status(p access.Principal) (*ports.StoreStatus, error) {
	if err := p.Can(access.ActionFlushStore); err != nil {
		return nil, err
	}
	st := uc.store.Status()
	return &st, nil
}

// Flush reintenta las escrituras pendientes y devuelve el estado resultante.
func (uc *StoreUseCase) Flush(ctx context.Context, p access.Principal) (*ports.StoreStatus, error) {
	if err := p.Can(access.ActionFlushStore); err != nil {
		return nil, err
	}
	if err := uc.store.Flush(ctx); err != nil {
		return nil, err
	}
	st := uc.store.Status()
	return &st, nil
}
