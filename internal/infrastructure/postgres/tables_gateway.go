// Package postgres implementa el almacén opcional sobre PostgreSQL: una tabla por hoja,
// reescritura completa de cada tabla dentro de una transacción.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
)

var _ repository.TablesGateway = (*TablesGateway)(nil)

// TablesGateway implementación del puerto TablesGateway sobre PostgreSQL.
type TablesGateway struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	log  zerolog.Logger
}

// NewTablesGateway construye el adaptador. Llamar EnsureSchema antes del primer uso.
func NewTablesGateway(pool *pgxpool.Pool, log zerolog.Logger) *TablesGateway {
	return &TablesGateway{pool: pool, tx: NewTxRunner(pool), log: log.With().Str("component", "postgres").Logger()}
}

// Backend implementa repository.TablesGateway.
func (g *TablesGateway) Backend() string { return "postgres" }

// Load lee las tablas indicadas en orden de inserción.
func (g *TablesGateway) Load(ctx context.Context, names ...entity.TableName) (*entity.Tables, error) {
	if len(names) == 0 {
		names = entity.AllTables
	}
	start := time.Now()
	out := entity.NewTables()
	for _, name := range names {
		if err := loadTable(ctx, g.pool, name, out); err != nil {
			return nil, domain.PersistenceError("leer "+string(name), err)
		}
	}
	g.log.Debug().Int("tables", len(names)).Dur("took", time.Since(start)).Msg("tablas cargadas")
	return out, nil
}

// Save reescribe las tablas indicadas en una sola transacción.
func (g *TablesGateway) Save(ctx context.Context, t *entity.Tables, names ...entity.TableName) error {
	if len(names) == 0 {
		names = entity.AllTables
	}
	err := g.tx.Run(ctx, func(q Querier) error {
		for _, name := range names {
			if err := rewriteTable(ctx, q, name, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.PersistenceError("guardar tablas", err)
	}
	g.log.Info().Int("tables", len(names)).Msg("tablas guardadas")
	return nil
}

func loadTable(ctx context.Context, q Querier, name entity.TableName, out *entity.Tables) error {
	switch name {
	case entity.TableProducts:
		rows, err := q.Query(ctx, `SELECT id, name, stock_qty, unit, category FROM produtos ORDER BY pos`)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (entity.Product, error) {
			var p entity.Product
			err := r.Scan(&p.ID, &p.Name, &p.StockQty, &p.Unit, &p.Category)
			return p, err
		})
		out.Products = list
		return err
	case entity.TableMovements:
		rows, err := q.Query(ctx, `
			SELECT product_id, product_unknown, responsible_id, unit_id, kind, quantity, supplier, reason, moved_at, date_raw
			FROM movimentacoes ORDER BY pos`)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (entity.Movement, error) {
			var (
				m         entity.Movement
				productID *int
				unknown   bool
				kind      string
				movedAt   *time.Time
			)
			err := r.Scan(&productID, &unknown, &m.ResponsibleID, &m.UnitID, &kind, &m.Quantity,
				&m.Supplier, &m.Reason, &movedAt, &m.DateRaw)
			switch {
			case unknown:
				m.Product = entity.UnknownProduct()
			case productID != nil:
				m.Product = entity.KnownProduct(*productID)
			}
			m.Kind = entity.MovementKind(kind)
			if movedAt != nil {
				m.Date = movedAt.UTC()
			}
			return m, err
		})
		out.Movements = list
		return err
	case entity.TableResponsibles:
		rows, err := q.Query(ctx, `SELECT id, name, unit_id, role, phone FROM responsaveis ORDER BY pos`)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (entity.ResponsibleParty, error) {
			var p entity.ResponsibleParty
			err := r.Scan(&p.ID, &p.Name, &p.UnitID, &p.Role, &p.Phone)
			return p, err
		})
		out.Responsibles = list
		return err
	case entity.TableUnits:
		rows, err := q.Query(ctx, `SELECT id, name, address, city, state FROM unidades ORDER BY pos`)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (entity.Unit, error) {
			var u entity.Unit
			err := r.Scan(&u.ID, &u.Name, &u.Address, &u.City, &u.State)
			return u, err
		})
		out.Units = list
		return err
	case entity.TableUsers:
		rows, err := q.Query(ctx, `SELECT username, password, level FROM usuarios ORDER BY pos`)
		if err != nil {
			return err
		}
		list, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (entity.User, error) {
			var (
				u     entity.User
				level string
			)
			err := r.Scan(&u.Username, &u.Password, &level)
			u.Level = entity.AccessLevel(level)
			return u, err
		})
		out.Users = list
		return err
	}
	return fmt.Errorf("tabla desconocida %q", name)
}

func rewriteTable(ctx context.Context, q Querier, name entity.TableName, t *entity.Tables) error {
	columns, rows := tableRows(name, t)
	if columns == nil {
		return fmt.Errorf("tabla desconocida %q", name)
	}
	if _, err := q.Exec(ctx, "DELETE FROM "+pgx.Identifier{string(name)}.Sanitize()); err != nil {
		return fmt.Errorf("vaciar %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := q.CopyFrom(ctx, pgx.Identifier{string(name)}, columns, pgx.CopyFromRows(rows)); err != nil {
		return writeError(name, err)
	}
	return nil
}

func tableRows(name entity.TableName, t *entity.Tables) ([]string, [][]any) {
	var rows [][]any
	switch name {
	case entity.TableProducts:
		for i, p := range t.Products {
			rows = append(rows, []any{i, p.ID, p.Name, p.StockQty, p.Unit, p.Category})
		}
		return []string{"pos", "id", "name", "stock_qty", "unit", "category"}, rows
	case entity.TableMovements:
		for i, m := range t.Movements {
			var productID *int
			if !m.Product.Unknown {
				id := m.Product.ID
				productID = &id
			}
			var movedAt *time.Time
			if !m.Date.IsZero() {
				d := m.Date
				movedAt = &d
			}
			rows = append(rows, []any{i, productID, m.Product.Unknown, m.ResponsibleID, m.UnitID,
				string(m.Kind), m.Quantity, m.Supplier, m.Reason, movedAt, m.DateRaw})
		}
		return []string{"pos", "product_id", "product_unknown", "responsible_id", "unit_id",
			"kind", "quantity", "supplier", "reason", "moved_at", "date_raw"}, rows
	case entity.TableResponsibles:
		for i, r := range t.Responsibles {
			rows = append(rows, []any{i, r.ID, r.Name, r.UnitID, r.Role, r.Phone})
		}
		return []string{"pos", "id", "name", "unit_id", "role", "phone"}, rows
	case entity.TableUnits:
		for i, u := range t.Units {
			rows = append(rows, []any{i, u.ID, u.Name, u.Address, u.City, u.State})
		}
		return []string{"pos", "id", "name", "address", "city", "state"}, rows
	case entity.TableUsers:
		for i, u := range t.Users {
			rows = append(rows, []any{i, u.Username, u.Password, string(u.Level)})
		}
		return []string{"pos", "username", "password", "level"}, rows
	}
	return nil, nil
}
