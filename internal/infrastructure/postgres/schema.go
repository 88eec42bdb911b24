package postgres

import (
	"context"
	"fmt"
)

// schema una tabla por hoja; pos conserva el orden de inserción de la planilla.
const schema = `
CREATE TABLE IF NOT EXISTS produtos (
	pos       INTEGER PRIMARY KEY,
	id        INTEGER NOT NULL UNIQUE,
	name      TEXT NOT NULL,
	stock_qty NUMERIC NOT NULL DEFAULT 0,
	unit      TEXT NOT NULL DEFAULT '',
	category  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS movimentacoes (
	pos             INTEGER PRIMARY KEY,
	product_id      INTEGER,
	product_unknown BOOLEAN NOT NULL DEFAULT FALSE,
	responsible_id  INTEGER NOT NULL,
	unit_id         INTEGER NOT NULL,
	kind            TEXT NOT NULL,
	quantity        NUMERIC NOT NULL,
	supplier        TEXT NOT NULL DEFAULT '',
	reason          TEXT NOT NULL DEFAULT '',
	moved_at        TIMESTAMPTZ,
	date_raw        TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS responsaveis (
	pos     INTEGER PRIMARY KEY,
	id      INTEGER NOT NULL UNIQUE,
	name    TEXT NOT NULL,
	unit_id INTEGER NOT NULL,
	role    TEXT NOT NULL DEFAULT '',
	phone   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS unidades (
	pos     INTEGER PRIMARY KEY,
	id      INTEGER NOT NULL UNIQUE,
	name    TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	city    TEXT NOT NULL DEFAULT '',
	state   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS usuarios (
	pos      INTEGER PRIMARY KEY,
	username TEXT NOT NULL,
	password TEXT NOT NULL,
	level    TEXT NOT NULL
);`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
