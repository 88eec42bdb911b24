package ports

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// TableStore define el puerto de salida hacia el almacén de tablas con caché.
// Tables devuelve copias: los casos de uso mutan la copia con el motor de dominio y la confirman con Commit.
type TableStore interface {
	Tables(ctx context.Context, names ...entity.TableName) (*entity.Tables, error)
	// Commit persiste las tablas indicadas. Si falla, la mutación queda pendiente en memoria
	// y el error envuelve domain.ErrPersistence.
	Commit(ctx context.Context, t *entity.Tables, names ...entity.TableName) error
	// Flush reintenta las escrituras pendientes.
	Flush(ctx context.Context) error
	Status() StoreStatus
}

// StoreStatus estado observable del almacén.
type StoreStatus struct {
	Backend   string             `json:"backend"`
	Loaded    []entity.TableName `json:"loaded"`
	Pending   []entity.TableName `json:"pending"`
	LastSave  *time.Time         `json:"last_save,omitempty"`
	LastError string             `json:"last_error,omitempty"`
}

// Recorder métricas de negocio (implementado por infrastructure/metrics).
type Recorder interface {
	MovementApplied(kind entity.MovementKind)
	Login(result string)
}

// Clock fuente de la fecha actual (fecha por defecto de los movimientos).
type Clock func() time.Time

// HistoryPDFGenerator genera el PDF del historial de movimientos.
type HistoryPDFGenerator interface {
	GenerateHistory(report dto.HistoryReportDTO) ([]byte, error)
}
