// Package backend construye el TablesGateway elegido por configuración.
package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/sheets"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/workbook"
	"github.com/jhoicas/inventario-planilhas/pkg/config"
)

// Open abre el gateway del backend configurado. La función devuelta libera conexiones (pool de postgres);
// siempre es seguro llamarlo.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.TablesGateway, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendWorkbook:
		return workbook.NewGateway(cfg.Store.WorkbookPath, log), noop, nil

	case config.BackendSheets:
		g, err := sheets.NewGateway(ctx, sheets.Config{
			CredentialsPath: cfg.Store.SheetsCredentialsPath,
			SpreadsheetID:   cfg.Store.SheetsSpreadsheetID,
			WritesPerMinute: cfg.Store.SheetsWritesPerMinute,
		}, log)
		if err != nil {
			return nil, noop, err
		}
		return g, noop, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return postgres.NewTablesGateway(pool, log), pool.Close, nil

	case config.BackendMemory:
		return memory.NewGateway(nil), noop, nil
	}
	return nil, noop, fmt.Errorf("backend desconocido %q", cfg.Store.Backend)
}
