package repository

import (
	"context"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// TablesGateway define el puerto de persistencia de las cinco hojas (DIP).
// Solo hace I/O: no aplica reglas de negocio.
type TablesGateway interface {
	// Load lee las tablas indicadas (todas si names está vacío). Una hoja ausente devuelve tabla vacía.
	Load(ctx context.Context, names ...entity.TableName) (*entity.Tables, error)
	// Save reescribe completas las tablas indicadas (todas si names está vacío).
	Save(ctx context.Context, t *entity.Tables, names ...entity.TableName) error
	// Backend nombre del backend para logs y estado (workbook, sheets, postgres, memory).
	Backend() string
}
