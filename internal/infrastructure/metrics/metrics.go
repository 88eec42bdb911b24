// Package metrics registra métricas Prometheus del almacén y de las operaciones del libro.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
)

// Metrics agrupa los colectores de la aplicación sobre un registro propio.
type Metrics struct {
	Registry *prometheus.Registry

	gatewayDuration *prometheus.HistogramVec
	gatewayErrors   *prometheus.CounterVec
	movements       *prometheus.CounterVec
	logins          *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New crea el registro con los colectores del proceso y de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		gatewayDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventario_store_operation_duration_seconds",
			Help:    "Duración de lecturas y escrituras del almacén",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"backend", "op"}),
		gatewayErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_store_errors_total",
			Help: "Fallas del almacén por operación",
		}, []string{"backend", "op"}),
		movements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_movements_applied_total",
			Help: "Movimientos aplicados por tipo",
		}, []string{"kind"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_logins_total",
			Help: "Intentos de inicio de sesión por resultado",
		}, []string{"result"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_http_requests_total",
			Help: "Peticiones HTTP por método y estado",
		}, []string{"method", "status"}),
	}
}

// MovementApplied cuenta un movimiento aplicado.
func (m *Metrics) MovementApplied(kind entity.MovementKind) {
	if m == nil {
		return
	}
	m.movements.WithLabelValues(string(kind)).Inc()
}

// Login cuenta un intento de inicio de sesión (ok, no_such_user, wrong_password, malformed, error).
func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// HTTPRequest cuenta una petición atendida.
func (m *Metrics) HTTPRequest(method, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, status).Inc()
}

// InstrumentGateway envuelve un gateway midiendo duración y fallas de Load/Save.
func (m *Metrics) InstrumentGateway(next repository.TablesGateway) repository.TablesGateway {
	return &instrumentedGateway{next: next, m: m}
}

type instrumentedGateway struct {
	next repository.TablesGateway
	m    *Metrics
}

func (g *instrumentedGateway) Backend() string { return g.next.Backend() }

func (g *instrumentedGateway) Load(ctx context.Context, names ...entity.TableName) (*entity.Tables, error) {
	start := time.Now()
	t, err := g.next.Load(ctx, names...)
	g.observe("load", start, err)
	return t, err
}

func (g *instrumentedGateway) Save(ctx context.Context, t *entity.Tables, names ...entity.TableName) error {
	start := time.Now()
	err := g.next.Save(ctx, t, names...)
	g.observe("save", start, err)
	return err
}

func (g *instrumentedGateway) observe(op string, start time.Time, err error) {
	backend := g.next.Backend()
	g.m.gatewayDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
	if err != nil {
		g.m.gatewayErrors.WithLabelValues(backend, op).Inc()
	}
}
