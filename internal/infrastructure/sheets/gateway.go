// Package sheets implementa el almacén sobre una planilla de Google Sheets con una pestaña por tabla.
package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/sheetcodec"
	"github.com/jhoicas/inventario-planilhas/pkg/config"
)

var _ repository.TablesGateway = (*Gateway)(nil)

// Config parámetros de conexión.
type Config struct {
	CredentialsPath string
	SpreadsheetID   string
	WritesPerMinute int
}

// Gateway lee y reescribe pestañas de una planilla en la nube.
type Gateway struct {
	service       *sheetsapi.Service
	spreadsheetID string
	limiter       *rate.Limiter
	log           zerolog.Logger
}

// NewGateway construye el cliente con credenciales de cuenta de servicio.
func NewGateway(ctx context.Context, cfg Config, log zerolog.Logger) (*Gateway, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("sheets: ruta de credenciales vacía")
	}
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("inicializar cliente sheets: %w", err)
	}
	return newGateway(service, cfg, log)
}

// NewGatewayWithHTTP construye el cliente contra un endpoint y cliente HTTP propios (emuladores y pruebas).
func NewGatewayWithHTTP(ctx context.Context, endpoint string, client *http.Client, cfg Config, log zerolog.Logger) (*Gateway, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithEndpoint(endpoint),
		option.WithHTTPClient(client),
	)
	if err != nil {
		return nil, fmt.Errorf("inicializar cliente sheets: %w", err)
	}
	return newGateway(service, cfg, log)
}

func newGateway(service *sheetsapi.Service, cfg Config, log zerolog.Logger) (*Gateway, error) {
	if len(cfg.SpreadsheetID) < config.MinSpreadsheetIDLength {
		return nil, fmt.Errorf("sheets: id de planilla inválido (mínimo %d caracteres)", config.MinSpreadsheetIDLength)
	}
	perMinute := cfg.WritesPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &Gateway{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 5),
		log:           log.With().Str("component", "sheets").Logger(),
	}, nil
}

// Backend implementa repository.TablesGateway.
func (g *Gateway) Backend() string { return "sheets" }

// Load lee las pestañas indicadas en una sola llamada. Pestañas ausentes devuelven tablas vacías.
// Los valores llegan sin formato: las fechas como número de serie, independientes de la
// configuración regional de la planilla.
func (g *Gateway) Load(ctx context.Context, names ...entity.TableName) (*entity.Tables, error) {
	if len(names) == 0 {
		names = entity.AllTables
	}
	start := time.Now()
	titles, err := g.sheetTitles(ctx)
	if err != nil {
		return nil, domain.PersistenceError("listar pestañas", err)
	}

	out := entity.NewTables()
	var present []entity.TableName
	for _, name := range names {
		if _, ok := titles[string(name)]; ok {
			present = append(present, name)
			continue
		}
		g.log.Warn().Str("table", string(name)).Msg("pestaña no encontrada, tabla vacía")
	}
	if len(present) == 0 {
		return out, nil
	}

	ranges := make([]string, len(present))
	for i, name := range present {
		ranges[i] = string(name)
	}
	resp, err := g.service.Spreadsheets.Values.BatchGet(g.spreadsheetID).
		Ranges(ranges...).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, domain.PersistenceError("leer pestañas", err)
	}
	for i, vr := range resp.ValueRanges {
		if i >= len(present) {
			break
		}
		if _, err := sheetcodec.Decode(present[i], toStrings(vr.Values), out); err != nil {
			return nil, domain.PersistenceError("decodificar "+string(present[i]), err)
		}
	}
	g.log.Debug().Int("tables", len(present)).Dur("took", time.Since(start)).Msg("pestañas cargadas")
	return out, nil
}

// Save limpia y reescribe cada pestaña indicada; crea las que no existen.
func (g *Gateway) Save(ctx context.Context, t *entity.Tables, names ...entity.TableName) error {
	if len(names) == 0 {
		names = entity.AllTables
	}
	titles, err := g.sheetTitles(ctx)
	if err != nil {
		return domain.PersistenceError("listar pestañas", err)
	}
	for _, name := range names {
		sheet := string(name)
		rows, err := sheetcodec.Encode(name, t)
		if err != nil {
			return domain.PersistenceError("codificar "+sheet, err)
		}
		if _, ok := titles[sheet]; !ok {
			if err := g.addSheet(ctx, sheet); err != nil {
				return domain.PersistenceError("crear pestaña "+sheet, err)
			}
			g.log.Info().Str("table", sheet).Msg("pestaña creada")
		}
		if err := g.limiter.Wait(ctx); err != nil {
			return domain.PersistenceError("esperar cuota", err)
		}
		if _, err := g.service.Spreadsheets.Values.Clear(g.spreadsheetID, sheet, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return domain.PersistenceError("limpiar "+sheet, err)
		}
		if err := g.limiter.Wait(ctx); err != nil {
			return domain.PersistenceError("esperar cuota", err)
		}
		payload := &sheetsapi.ValueRange{Values: toInterfaces(rows)}
		if _, err := g.service.Spreadsheets.Values.Update(g.spreadsheetID, sheet+"!A1", payload).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do(); err != nil {
			return domain.PersistenceError("escribir "+sheet, err)
		}
		g.log.Info().Str("table", sheet).Int("rows", len(rows)-1).Msg("pestaña guardada")
	}
	return nil
}

func (g *Gateway) sheetTitles(ctx context.Context) (map[string]struct{}, error) {
	ss, err := g.service.Spreadsheets.Get(g.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	titles := make(map[string]struct{}, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles[s.Properties.Title] = struct{}{}
		}
	}
	return titles, nil
}

func (g *Gateway) addSheet(ctx context.Context, title string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: title}},
		}},
	}
	_, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	return err
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			switch c := v.(type) {
			case nil:
			case float64:
				out[i][j] = strconv.FormatFloat(c, 'f', -1, 64)
			default:
				out[i][j] = fmt.Sprint(c)
			}
		}
	}
	return out
}

func toInterfaces(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
