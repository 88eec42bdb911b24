package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/metrics"
)

func TestInstrumentGateway_CuentaFallas(t *testing.T) {
	m := metrics.New()
	mem := memory.NewGateway(nil)
	gw := m.InstrumentGateway(mem)
	ctx := context.Background()

	_, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", gw.Backend())

	mem.SetFailSave(errors.New("sin disco"))
	assert.Error(t, gw.Save(ctx, entity.NewTables()))

	n, err := testutil.GatherAndCount(m.Registry, "inventario_store_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testutil.GatherAndCount(m.Registry, "inventario_store_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por operación")
}

func TestMovementApplied(t *testing.T) {
	m := metrics.New()
	m.MovementApplied(entity.MovementEntry)
	m.MovementApplied(entity.MovementEntry)
	m.MovementApplied(entity.MovementExit)

	n, err := testutil.GatherAndCount(m.Registry, "inventario_movements_applied_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var nilMetrics *metrics.Metrics
	assert.NotPanics(t, func() { nilMetrics.Login("ok") })
}
