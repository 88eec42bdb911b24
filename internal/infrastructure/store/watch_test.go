package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/workbook"
)

func TestWatcher_EdicionExternaInvalidaCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "inventario.xlsx")
	external := workbook.NewGateway(path, zerolog.Nop())
	require.NoError(t, external.Save(ctx, seed()))

	s := store.New(workbook.NewGateway(path, zerolog.Nop()), zerolog.Nop())
	got, err := s.Tables(ctx, entity.TableProducts)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)

	w, err := store.NewWatcher(path, s, 20*time.Millisecond)
	require.NoError(t, err)
	w.Start(ctx)
	defer w.Stop()

	edited := seed()
	edited.Products = append(edited.Products, entity.Product{ID: 2, Name: "Caneta"})
	require.NoError(t, external.Save(ctx, edited, entity.TableProducts))

	assert.Eventually(t, func() bool {
		got, err := s.Tables(ctx, entity.TableProducts)
		return err == nil && len(got.Products) == 2
	}, 3*time.Second, 20*time.Millisecond)
}
