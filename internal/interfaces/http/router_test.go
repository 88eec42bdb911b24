package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-planilhas/internal/application/auth"
	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/inventory"
	"github.com/jhoicas/inventario-planilhas/internal/application/report"
	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
	apphttp "github.com/jhoicas/inventario-planilhas/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-planilhas/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-test"
	testDelayMs   = 1500
)

type testServer struct {
	app *fiber.App
	gw  *memory.Gateway
	m   *metrics.Metrics
}

func seedTables() *entity.Tables {
	t := entity.NewTables()
	t.Products = []entity.Product{
		{ID: 1, Name: "Papel A4", StockQty: decimal.NewFromInt(10), Unit: "un"},
		{ID: 2, Name: "Caneta", StockQty: decimal.NewFromInt(5), Unit: "un"},
	}
	t.Units = []entity.Unit{{ID: 1, Name: "Sede"}}
	t.Responsibles = []entity.ResponsibleParty{{ID: 1, Name: "Maria", UnitID: 1}}
	t.Movements = []entity.Movement{{
		Product: entity.KnownProduct(1), ResponsibleID: 1, UnitID: 1, Kind: entity.MovementEntry,
		Quantity: decimal.NewFromInt(10), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}}
	t.Users = []entity.User{
		{Username: "gerente", Password: "123", Level: entity.LevelManager},
		{Username: "visor", Password: "abc", Level: entity.LevelViewer},
	}
	return t
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gw := memory.NewGateway(seedTables())
	m := metrics.New()
	s := store.New(m.InstrumentGateway(gw), zerolog.Nop())
	clock := func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	products := usecase.NewProductUseCase(s, domain.NameCaseSensitive, zerolog.Nop())

	app := apphttp.NewApp("test", zerolog.Nop(), m)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(s, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, m, zerolog.Nop()),
		ProductUC:        products,
		RegistryUC:       usecase.NewRegistryUseCase(s, domain.NameCaseSensitive, zerolog.Nop()),
		UserUC:           usecase.NewUserUseCase(s, usecase.UserOptions{Policy: domain.NameCaseSensitive}, zerolog.Nop()),
		StoreUC:          usecase.NewStoreUseCase(s),
		RegisterMovement: inventory.NewRegisterMovementUseCase(s, m, clock, zerolog.Nop()),
		HistoryUC:        report.NewHistoryUseCase(s, pdf.NewHistoryPDFGenerator(), clock),
		ConfirmDelayMs:   testDelayMs,
		Gatherer:         m.Registry,
		Service:          "test",
	})
	return &testServer{app: app, gw: gw, m: m}
}

func tokenFor(t *testing.T, username string, level entity.AccessLevel) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, username, string(level), testIssuer, 60)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestLogin_DistingueCausas(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "gerente", Password: "123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "MANAGER", login.User.AccessLevel)
	assert.Contains(t, login.Permissions, "manage_users")

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "gerente", Password: "999"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "WRONG_PASSWORD", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_SUCH_USER", errorCode(t, resp))

	// el token emitido sirve para /me
	resp = s.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProducts_PermisosPorNivel(t *testing.T) {
	s := newTestServer(t)
	viewer := tokenFor(t, "visor", entity.LevelViewer)

	resp := s.do(t, http.MethodGet, "/api/products?sort=name_asc", viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Caneta", list.Items[0].Name)

	resp = s.do(t, http.MethodPost, "/api/products", viewer, dto.CreateProductRequest{Name: "Grampo"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_CrearConIDSiguiente(t *testing.T) {
	s := newTestServer(t)
	mgr := tokenFor(t, "gerente", entity.LevelManager)

	resp := s.do(t, http.MethodGet, "/api/products/next-id", mgr, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next dto.NextIDResponse
	decode(t, resp, &next)
	assert.Equal(t, 3, next.NextID)

	resp = s.do(t, http.MethodPost, "/api/products", mgr, dto.CreateProductRequest{Name: "Grampo", StockQty: decimal.NewFromInt(7)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data           dto.ProductResponse `json:"data"`
		ConfirmDelayMs int                 `json:"confirm_delay_ms"`
	}
	decode(t, resp, &created)
	assert.Equal(t, 3, created.Data.ID)
	assert.Equal(t, testDelayMs, created.ConfirmDelayMs)
	assert.Len(t, s.gw.Snapshot().Products, 3)

	resp = s.do(t, http.MethodPost, "/api/products", mgr, dto.CreateProductRequest{Name: "Grampo"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_NAME", errorCode(t, resp))

	resp = s.do(t, http.MethodGet, "/api/products/abc", mgr, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", errorCode(t, resp))

	resp = s.do(t, http.MethodGet, "/api/products/99", mgr, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovements_SalidaActualizaStock(t *testing.T) {
	s := newTestServer(t)
	op := tokenFor(t, "operador", entity.LevelOperator)

	resp := s.do(t, http.MethodPost, "/api/movements", op, dto.RegisterMovementRequest{
		ProductName: "Papel A4", ResponsibleName: "Maria", UnitName: "Sede",
		Kind: "EXIT", Quantity: decimal.NewFromInt(3),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		Data dto.MovementResponse `json:"data"`
	}
	decode(t, resp, &out)
	assert.True(t, decimal.NewFromInt(7).Equal(out.Data.StockQtyAfter))
	assert.Equal(t, "2024-03-15", out.Data.Date)

	snap := s.gw.Snapshot()
	assert.True(t, decimal.NewFromInt(7).Equal(snap.Products[0].StockQty))
	assert.Len(t, snap.Movements, 2)

	resp = s.do(t, http.MethodPost, "/api/movements", op, dto.RegisterMovementRequest{
		ProductName: "Inexistente", ResponsibleName: "Maria", UnitName: "Sede",
		Kind: "ENTRY", Quantity: decimal.NewFromInt(1),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "REFERENCE_NOT_FOUND", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/movements", op, dto.RegisterMovementRequest{
		ProductName: "Papel A4", ResponsibleName: "Maria", UnitName: "Sede",
		Kind: "ENTRY", Quantity: decimal.Zero,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/movements", op, map[string]any{"product_name": "Papel A4", "kind": "ROUBO"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestMovements_FallaDeGuardadoYFlush(t *testing.T) {
	s := newTestServer(t)
	op := tokenFor(t, "operador", entity.LevelOperator)
	s.gw.SetFailSave(errors.New("cuota agotada"))

	resp := s.do(t, http.MethodPost, "/api/movements", op, dto.RegisterMovementRequest{
		ProductName: "Caneta", ResponsibleName: "Maria", UnitName: "Sede",
		Kind: "ENTRY", Quantity: decimal.NewFromInt(1),
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PERSISTENCE_FAILURE", errorCode(t, resp))

	resp = s.do(t, http.MethodGet, "/api/store/status", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st map[string]any
	decode(t, resp, &st)
	assert.NotEmpty(t, st["pending"])

	s.gw.SetFailSave(nil)
	resp = s.do(t, http.MethodPost, "/api/store/flush", op, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, s.gw.Snapshot().Movements, 2)
}

func TestHistory_FiltraYExportaPDF(t *testing.T) {
	s := newTestServer(t)
	op := tokenFor(t, "operador", entity.LevelOperator)

	resp := s.do(t, http.MethodGet, "/api/history?unit=Sede&from=2024-03-01&to=2024-03-31", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hist dto.HistoryResponse
	decode(t, resp, &hist)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, "Papel A4", hist.Items[0].ProductName)

	resp = s.do(t, http.MethodGet, "/api/history?unit=Filial", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &hist)
	assert.Empty(t, hist.Items)

	resp = s.do(t, http.MethodGet, "/api/history/pdf", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	viewer := tokenFor(t, "visor", entity.LevelViewer)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/history", viewer, nil).StatusCode)
}

func TestRegistry_OperadorListaPeroNoEdita(t *testing.T) {
	s := newTestServer(t)
	op := tokenFor(t, "operador", entity.LevelOperator)
	mgr := tokenFor(t, "gerente", entity.LevelManager)

	resp := s.do(t, http.MethodGet, "/api/units", op, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/units", op, dto.UnitRequest{Name: "Filial"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/units", mgr, dto.UnitRequest{Name: "Filial"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/responsibles", mgr, dto.ResponsibleRequest{Name: "João", UnitID: 9})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "REFERENCE_NOT_FOUND", errorCode(t, resp))
}

func TestUsers_SoloGerente(t *testing.T) {
	s := newTestServer(t)
	mgr := tokenFor(t, "gerente", entity.LevelManager)
	op := tokenFor(t, "operador", entity.LevelOperator)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/users", op, nil).StatusCode)

	resp := s.do(t, http.MethodPost, "/api/users", mgr, dto.CreateUserRequest{Username: "novo", Password: "x", AccessLevel: "operator"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/api/users/novo", mgr, dto.UpdateUserRequest{Username: "novo2", Password: "y", AccessLevel: "VIEWER"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "novo2", Password: "y"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics_Expuestas(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", "", nil)

	resp := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "inventario_http_requests_total"))
}
