// Package store mantiene en memoria las tablas leídas del almacén: lectura con caché,
// invalidación solo de las tablas tocadas y reintento de escrituras fallidas.
package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
)

var _ ports.TableStore = (*Store)(nil)

// Store caché de tablas sobre un TablesGateway. El mutex solo protege memoria:
// entre interacciones gana la última escritura.
type Store struct {
	gw  repository.TablesGateway
	log zerolog.Logger

	mu        sync.Mutex
	cache     *entity.Tables
	loaded    map[entity.TableName]bool
	pending   map[entity.TableName]bool
	gen       map[entity.TableName]uint64
	lastSave  time.Time
	lastError error

	flight singleflight.Group
}

// New construye el store vacío; las tablas se cargan en la primera lectura.
func New(gw repository.TablesGateway, log zerolog.Logger) *Store {
	return &Store{
		gw:      gw,
		log:     log.With().Str("component", "store").Str("backend", gw.Backend()).Logger(),
		cache:   entity.NewTables(),
		loaded:  map[entity.TableName]bool{},
		pending: map[entity.TableName]bool{},
		gen:     map[entity.TableName]uint64{},
	}
}

// Backend nombre del backend subyacente.
func (s *Store) Backend() string { return s.gw.Backend() }

// Tables devuelve una copia con las tablas pedidas (todas si names está vacío),
// leyendo del almacén solo las que no están en caché.
func (s *Store) Tables(ctx context.Context, names ...entity.TableName) (*entity.Tables, error) {
	if len(names) == 0 {
		names = entity.AllTables
	}
	for _, name := range names {
		if err := s.ensure(ctx, name); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := entity.NewTables()
	out.CopyFrom(s.cache, names...)
	return out, nil
}

// ensure carga name hasta que quede en caché. Si una invalidación o escritura
// cambia la generación durante la lectura, lo leído se descarta y se vuelve a leer.
func (s *Store) ensure(ctx context.Context, name entity.TableName) error {
	for {
		s.mu.Lock()
		if s.loaded[name] {
			s.mu.Unlock()
			return nil
		}
		gen := s.gen[name]
		s.mu.Unlock()

		if err := ctx.Err(); err != nil {
			return domain.PersistenceError("cargar "+string(name), err)
		}
		key := string(name) + "#" + strconv.FormatUint(gen, 10)
		_, err, _ := s.flight.Do(key, func() (interface{}, error) {
			t, err := s.gw.Load(ctx, name)
			if err != nil {
				return nil, err
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			// una escritura o invalidación concurrente ganó: lo leído ya es viejo
			if s.gen[name] == gen && !s.pending[name] {
				s.cache.CopyFrom(t, name)
				s.loaded[name] = true
			}
			return nil, nil
		})
		if err != nil {
			s.log.Error().Err(err).Str("table", string(name)).Msg("falla al cargar tabla")
			return domain.PersistenceError("cargar "+string(name), err)
		}
	}
}

// Commit aplica en memoria las tablas mutadas y las escribe en el almacén junto con las pendientes.
// Si la escritura falla la mutación queda en memoria como pendiente (sin rollback) y se devuelve
// ErrPersistence; Flush la reintenta. Si tiene éxito, las tablas tocadas se invalidan y se releen
// en la próxima lectura.
func (s *Store) Commit(ctx context.Context, t *entity.Tables, names ...entity.TableName) error {
	if len(names) == 0 {
		names = entity.AllTables
	}
	s.mu.Lock()
	s.cache.CopyFrom(t, names...)
	for _, n := range names {
		s.pending[n] = true
		s.loaded[n] = true
		s.gen[n]++
	}
	s.mu.Unlock()
	return s.Flush(ctx)
}

// Flush escribe las tablas pendientes. Sin pendientes no hace nada.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	names := s.pendingNames()
	if len(names) == 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.cache.Clone()
	s.mu.Unlock()

	start := time.Now()
	err := s.gw.Save(ctx, snapshot, names...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = err
		s.log.Error().Err(err).Strs("tables", toStrings(names)).Msg("falla al guardar, cambios pendientes en memoria")
		return domain.PersistenceError("guardar", err)
	}
	s.lastError = nil
	s.lastSave = time.Now()
	for _, n := range names {
		delete(s.pending, n)
		s.loaded[n] = false
		s.gen[n]++
	}
	s.log.Info().Strs("tables", toStrings(names)).Dur("took", time.Since(start)).Msg("tablas guardadas")
	return nil
}

// Invalidate descarta de la caché las tablas indicadas (todas si names está vacío).
// Las tablas con cambios pendientes se conservan.
func (s *Store) Invalidate(names ...entity.TableName) {
	if len(names) == 0 {
		names = entity.AllTables
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		if s.pending[n] {
			continue
		}
		s.loaded[n] = false
		s.gen[n]++
	}
}

// Status devuelve el estado actual.
func (s *Store) Status() ports.StoreStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := ports.StoreStatus{Backend: s.gw.Backend(), Pending: s.pendingNames()}
	for _, n := range entity.AllTables {
		if s.loaded[n] {
			st.Loaded = append(st.Loaded, n)
		}
	}
	if !s.lastSave.IsZero() {
		last := s.lastSave
		st.LastSave = &last
	}
	if s.lastError != nil {
		st.LastError = s.lastError.Error()
	}
	return st
}

// HasPending indica si hay cambios sin guardar.
func (s *Store) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

func (s *Store) pendingNames() []entity.TableName {
	names := make([]entity.TableName, 0, len(s.pending))
	for n := range s.pending {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func toStrings(names []entity.TableName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
