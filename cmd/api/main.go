package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/inventario-planilhas/docs"
	"github.com/jhoicas/inventario-planilhas/internal/application/auth"
	"github.com/jhoicas/inventario-planilhas/internal/application/inventory"
	"github.com/jhoicas/inventario-planilhas/internal/application/report"
	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/backend"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-planilhas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/inventario-planilhas/internal/interfaces/http"
	"github.com/jhoicas/inventario-planilhas/pkg/config"
	"github.com/jhoicas/inventario-planilhas/pkg/logger"
)

// @title           Inventário API
// @version         1.0
// @description     Libro de inventario sobre planilla: catálogo, movimientos, historial y cuentas.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	m := metrics.New()
	gw, closeGateway, err := backend.Open(ctx, cfg, log.Component(cfg.Store.Backend))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeGateway()

	tables := store.New(m.InstrumentGateway(gw), log.Zerolog())
	if cfg.Store.Backend == config.BackendWorkbook && cfg.Store.WorkbookWatch {
		w, err := store.NewWatcher(cfg.Store.WorkbookPath, tables, 0)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo observar la planilla, se usará solo la caché")
		} else {
			w.Start(ctx)
			defer w.Stop()
		}
	}

	catalogPolicy := domain.NameCaseSensitive
	userPolicy := domain.NameCaseSensitive
	if cfg.Auth.UsernameUniqueCaseInsensitive {
		userPolicy = domain.NameCaseInsensitive
	}
	clock := func() time.Time { return time.Now().UTC() }

	authUC := auth.NewAuthUseCase(tables, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, m, log.Zerolog())
	productUC := usecase.NewProductUseCase(tables, catalogPolicy, log.Zerolog())
	registryUC := usecase.NewRegistryUseCase(tables, catalogPolicy, log.Zerolog())
	userUC := usecase.NewUserUseCase(tables, usecase.UserOptions{
		Policy:        userPolicy,
		HashPasswords: cfg.Auth.HashPasswords,
	}, log.Zerolog())
	storeUC := usecase.NewStoreUseCase(tables)
	registerMovementUC := inventory.NewRegisterMovementUseCase(tables, m, clock, log.Zerolog())
	historyUC := report.NewHistoryUseCase(tables, infrapdf.NewHistoryPDFGenerator(), clock)

	app := httpRouter.NewApp(cfg.App.Name, log.Zerolog(), m)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventário API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		RegistryUC:       registryUC,
		UserUC:           userUC,
		StoreUC:          storeUC,
		RegisterMovement: registerMovementUC,
		HistoryUC:        historyUC,
		ConfirmDelayMs:   cfg.UI.ConfirmDelayMs,
		Gatherer:         m.Registry,
		Service:          cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if tables.HasPending() {
		if err := tables.Flush(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cambios pendientes sin guardar al apagar")
		}
	}

	log.Info().Msg("aplicación detenida")
}
