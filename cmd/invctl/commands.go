package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-planilhas/internal/application/inventory"
	"github.com/jhoicas/inventario-planilhas/internal/application/report"
	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/repository"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/inventario-planilhas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-planilhas/internal/infrastructure/store"
	"github.com/jhoicas/inventario-planilhas/pkg/config"
	"github.com/jhoicas/inventario-planilhas/pkg/logger"
)

// operator identidad con la que actúa la herramienta: acceso local equivale a gerente.
var operator = access.Principal{Username: "invctl", Level: entity.LevelManager}

type opener func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.TablesGateway, func(), error)

// app estado compartido entre subcomandos.
type app struct {
	cfg  *config.Config
	open opener
	out  io.Writer
	log  zerolog.Logger
	now  func() time.Time

	backendFlag  string
	workbookFlag string
	verbose      bool
}

func newApp(out io.Writer) *app {
	return &app{
		open: backend.Open,
		out:  out,
		log:  zerolog.Nop(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// services casos de uso sobre un store abierto.
type services struct {
	store    *store.Store
	products *usecase.ProductUseCase
	registry *usecase.RegistryUseCase
	users    *usecase.UserUseCase
	movement *inventory.RegisterMovementUseCase
	history  *report.HistoryUseCase
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "invctl",
		Short:         "Administración del inventario sobre planilla",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	root.SetOut(a.out)
	root.PersistentFlags().StringVar(&a.backendFlag, "backend", "", "backend del almacén (workbook, sheets, postgres, memory)")
	root.PersistentFlags().StringVar(&a.workbookFlag, "workbook", "", "ruta de la planilla local")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log detallado")

	root.AddCommand(
		newUserCmd(a),
		newHistoryCmd(a),
		newCopyCmd(a),
		newSeedCmd(a),
		newNextIDCmd(a),
	)
	return root
}

func (a *app) loadConfig() error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.backendFlag != "" {
		a.cfg.Store.Backend = a.backendFlag
	}
	if a.workbookFlag != "" {
		a.cfg.Store.WorkbookPath = a.workbookFlag
	}
	if a.verbose {
		a.log = logger.New(logger.Config{Env: "development", Level: "debug"}).Zerolog()
	}
	return a.cfg.Store.Validate(a.cfg.DB)
}

// withServices abre el backend configurado, ejecuta fn y guarda lo pendiente.
func (a *app) withServices(ctx context.Context, fn func(s *services) error) error {
	gw, closeGateway, err := a.open(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer closeGateway()

	st := store.New(gw, a.log)
	userPolicy := domain.NameCaseSensitive
	if a.cfg.Auth.UsernameUniqueCaseInsensitive {
		userPolicy = domain.NameCaseInsensitive
	}
	s := &services{
		store:    st,
		products: usecase.NewProductUseCase(st, domain.NameCaseSensitive, a.log),
		registry: usecase.NewRegistryUseCase(st, domain.NameCaseSensitive, a.log),
		users:    usecase.NewUserUseCase(st, usecase.UserOptions{Policy: userPolicy, HashPasswords: a.cfg.Auth.HashPasswords}, a.log),
		movement: inventory.NewRegisterMovementUseCase(st, nil, a.now, a.log),
		history:  report.NewHistoryUseCase(st, infrapdf.NewHistoryPDFGenerator(), a.now),
	}
	if err := fn(s); err != nil {
		return err
	}
	return st.Flush(ctx)
}
