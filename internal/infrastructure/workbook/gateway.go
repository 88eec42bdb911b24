// Package workbook implementa el almacén sobre una planilla local .xlsx con una hoja por tabla.
package workbook

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/sheetcodec"
)

var _ repository.TablesGateway = (*Gateway)(nil)

// Gateway lee y reescribe las hojas de un archivo .xlsx.
type Gateway struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewGateway construye el gateway para el archivo indicado. El archivo se crea en el primer Save.
func NewGateway(path string, log zerolog.Logger) *Gateway {
	return &Gateway{path: path, log: log.With().Str("component", "workbook").Str("path", path).Logger()}
}

// Backend implementa repository.TablesGateway.
func (g *Gateway) Backend() string { return "workbook" }

// Path ruta del archivo.
func (g *Gateway) Path() string { return g.path }

// Load lee las hojas indicadas. Archivo inexistente u hoja ausente devuelven tablas vacías.
func (g *Gateway) Load(ctx context.Context, names ...entity.TableName) (*entity.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = entity.AllTables
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	out := entity.NewTables()
	f, err := excelize.OpenFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.log.Warn().Msg("planilla inexistente, se usan tablas vacías")
			return out, nil
		}
		return nil, domain.PersistenceError("abrir planilla", err)
	}
	defer func() { _ = f.Close() }()

	for _, name := range names {
		sheet := string(name)
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			g.log.Warn().Str("table", sheet).Msg("hoja no encontrada, tabla vacía")
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, domain.PersistenceError("leer hoja "+sheet, err)
		}
		if _, err := sheetcodec.Decode(name, rows, out); err != nil {
			return nil, domain.PersistenceError("decodificar hoja "+sheet, err)
		}
		g.log.Debug().Str("table", sheet).Int("rows", out.Len(name)).Dur("took", time.Since(start)).Msg("hoja cargada")
	}
	return out, nil
}

// Save reescribe completas las hojas indicadas conservando las demás hojas del archivo.
func (g *Gateway) Save(ctx context.Context, t *entity.Tables, names ...entity.TableName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(names) == 0 {
		names = entity.AllTables
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	f, created, err := g.open()
	if err != nil {
		return domain.PersistenceError("abrir planilla", err)
	}
	defer func() { _ = f.Close() }()

	for _, name := range names {
		rows, err := sheetcodec.Encode(name, t)
		if err != nil {
			return domain.PersistenceError("codificar hoja "+string(name), err)
		}
		if err := replaceSheet(f, string(name), rows); err != nil {
			return domain.PersistenceError("escribir hoja "+string(name), err)
		}
	}
	if created {
		// la hoja por defecto de un libro nuevo sobra
		if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 && f.SheetCount > 1 {
			if err := f.DeleteSheet("Sheet1"); err != nil {
				return domain.PersistenceError("limpiar planilla", err)
			}
		}
	}
	if idx, _ := f.GetSheetIndex(string(names[0])); idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if dir := filepath.Dir(g.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.PersistenceError("crear directorio", err)
		}
	}
	if err := f.SaveAs(g.path); err != nil {
		return domain.PersistenceError("guardar planilla", err)
	}
	g.log.Info().Strs("tables", tableNames(names)).Msg("planilla guardada")
	return nil
}

func (g *Gateway) open() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(g.path)
	if err == nil {
		return f, false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	return nil, false, err
}

// replaceSheet escribe las filas en una hoja temporal y la renombra sobre la original.
func replaceSheet(f *excelize.File, sheet string, rows [][]string) error {
	tmp := sheet + "~"
	if idx, _ := f.GetSheetIndex(tmp); idx >= 0 {
		if err := f.DeleteSheet(tmp); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(tmp); err != nil {
		return err
	}
	var numeric []bool
	for i, row := range rows {
		if i == 0 {
			numeric = make([]bool, len(row))
			for c, h := range row {
				numeric[c] = sheetcodec.Numeric(h)
			}
		}
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = cellValue(v, i > 0 && c < len(numeric) && numeric[c])
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tmp, axis, &cells); err != nil {
			return err
		}
	}
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return err
		}
	}
	return f.SetSheetName(tmp, sheet)
}

func cellValue(v string, numeric bool) interface{} {
	if !numeric || v == "" {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if x, err := strconv.ParseFloat(v, 64); err == nil {
		return x
	}
	return v
}

func tableNames(names []entity.TableName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

// Exists indica si el archivo de planilla ya existe.
func (g *Gateway) Exists() bool {
	_, err := os.Stat(g.path)
	return err == nil
}
