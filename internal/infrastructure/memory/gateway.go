// Package memory implementa el almacén en memoria (desarrollo y pruebas).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
)

var _ repository.TablesGateway = (*Gateway)(nil)

// Gateway guarda una copia de las tablas. SetFailSave permite simular fallas de escritura.
type Gateway struct {
	mu       sync.Mutex
	tables   *entity.Tables
	saves    int
	failSave error
}

// NewGateway crea el gateway con el contenido inicial (vacío si seed es nil).
func NewGateway(seed *entity.Tables) *Gateway {
	return &Gateway{tables: seed.Clone()}
}

// Backend implementa repository.TablesGateway.
func (g *Gateway) Backend() string { return "memory" }

// Load devuelve una copia de las tablas indicadas.
func (g *Gateway) Load(ctx context.Context, names ...entity.TableName) (*entity.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := entity.NewTables()
	out.CopyFrom(g.tables, names...)
	return out, nil
}

// Save reemplaza las tablas indicadas.
func (g *Gateway) Save(ctx context.Context, t *entity.Tables, names ...entity.TableName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSave != nil {
		return g.failSave
	}
	g.tables.CopyFrom(t, names...)
	g.saves++
	return nil
}

// SetFailSave activa o desactiva la falla simulada.
func (g *Gateway) SetFailSave(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failSave = err
}

// Saves cantidad de escrituras exitosas.
func (g *Gateway) Saves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

// Snapshot copia del contenido actual.
func (g *Gateway) Snapshot() *entity.Tables {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tables.Clone()
}
