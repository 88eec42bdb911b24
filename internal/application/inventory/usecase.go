package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/inventory"
)

// movementTables tablas que lee el registro de un movimiento; solo movimientos y productos se escriben.
var movementTables = []entity.TableName{
	entity.TableProducts, entity.TableResponsibles, entity.TableUnits, entity.TableMovements,
}

// RegisterMovementUseCase registra entradas y salidas: ajusta el stock del producto y agrega la fila
// al libro en una sola confirmación al almacén.
type RegisterMovementUseCase struct {
	store    ports.TableStore
	recorder ports.Recorder
	clock    ports.Clock
	log      zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. clock nil usa time.Now.
func NewRegisterMovementUseCase(store ports.TableStore, recorder ports.Recorder, clock ports.Clock, log zerolog.Logger) *RegisterMovementUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &RegisterMovementUseCase{
		store:    store,
		recorder: recorder,
		clock:    clock,
		log:      log.With().Str("component", "ledger").Logger(),
	}
}

// RegisterMovement resuelve producto, responsable y unidad por nombre y aplica el movimiento.
// Sin fecha se usa la de hoy. Las salidas pueden dejar el stock negativo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, p access.Principal, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if err := p.Can(access.ActionApplyMovement); err != nil {
		return nil, err
	}
	date, err := uc.movementDate(in.Date)
	if err != nil {
		return nil, err
	}
	input := inventory.MovementInput{
		ProductName:     in.ProductName,
		ResponsibleName: in.ResponsibleName,
		UnitName:        in.UnitName,
		Kind:            entity.MovementKind(strings.ToUpper(strings.TrimSpace(in.Kind))),
		Quantity:        in.Quantity,
		Supplier:        strings.TrimSpace(in.Supplier),
		Reason:          strings.TrimSpace(in.Reason),
		Date:            date,
	}

	t, err := uc.store.Tables(ctx, movementTables...)
	if err != nil {
		return nil, err
	}
	updated, err := inventory.ApplyMovement(t, input)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableProducts, entity.TableMovements); err != nil {
		return nil, err
	}
	if uc.recorder != nil {
		uc.recorder.MovementApplied(input.Kind)
	}

	mov := updated.Movements[len(updated.Movements)-1]
	prod, _ := inventory.FindProduct(updated.Products, mov.Product.ID)
	uc.log.Info().
		Str("user", p.Username).
		Int("product_id", prod.ID).
		Str("kind", string(mov.Kind)).
		Str("quantity", mov.Quantity.String()).
		Str("stock_after", prod.StockQty.String()).
		Msg("movimiento registrado")

	return &dto.MovementResponse{
		ProductID:     prod.ID,
		ProductName:   prod.Name,
		Kind:          string(mov.Kind),
		Quantity:      mov.Quantity,
		Date:          mov.Date.Format("2006-01-02"),
		StockQtyAfter: prod.StockQty,
	}, nil
}

func (uc *RegisterMovementUseCase) movementDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		now := uc.clock()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, raw)
	}
	return d, nil
}
