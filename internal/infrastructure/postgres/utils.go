package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

const (
	pgUniqueViolation   = "23505"
	pgUndefinedTable    = "42P01"
	pgSerializationFail = "40001"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeError traduce fallas de COPY a errores de dominio cuando tienen significado para el usuario.
func writeError(name entity.TableName, err error) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("%s: %w", name, domain.ErrDuplicateID)
	case pgUndefinedTable:
		return fmt.Errorf("tabla %s inexistente, falta EnsureSchema: %w", name, err)
	case pgSerializationFail:
		return fmt.Errorf("escritura concurrente sobre %s: %w", name, err)
	}
	return fmt.Errorf("copiar %s: %w", name, err)
}
