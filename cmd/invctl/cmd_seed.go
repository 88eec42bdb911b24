package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
)

// fixture datos iniciales; las referencias entre tablas van por nombre.
type fixture struct {
	Units []struct {
		ID      *int   `yaml:"id"`
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
		City    string `yaml:"city"`
		State   string `yaml:"state"`
	} `yaml:"units"`
	Responsibles []struct {
		ID    *int   `yaml:"id"`
		Name  string `yaml:"name"`
		Unit  string `yaml:"unit"`
		Role  string `yaml:"role"`
		Phone string `yaml:"phone"`
	} `yaml:"responsibles"`
	Products []struct {
		ID       *int   `yaml:"id"`
		Name     string `yaml:"name"`
		StockQty string `yaml:"stock_qty"`
		Unit     string `yaml:"unit"`
		Category string `yaml:"category"`
	} `yaml:"products"`
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Level    string `yaml:"level"`
	} `yaml:"users"`
	Movements []struct {
		Product     string `yaml:"product"`
		Responsible string `yaml:"responsible"`
		Unit        string `yaml:"unit"`
		Kind        string `yaml:"kind"`
		Quantity    string `yaml:"quantity"`
		Supplier    string `yaml:"supplier"`
		Reason      string `yaml:"reason"`
		Date        string `yaml:"date"`
	} `yaml:"movements"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer fixture: %w", err)
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear fixture %s: %w", path, err)
	}
	return &f, nil
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Carga unidades, responsables, productos, usuarios y movimientos desde un YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(s *services) error {
				n, err := applyFixture(cmd.Context(), s, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cargados: %d unidades, %d responsables, %d productos, %d usuarios, %d movimientos\n",
					n[0], n[1], n[2], n[3], n[4])
				return nil
			})
		},
	}
}

// applyFixture carga en orden de dependencia a través de los casos de uso, así que las reglas
// de unicidad y referencia se aplican igual que en la API.
func applyFixture(ctx context.Context, s *services, f *fixture) ([5]int, error) {
	var n [5]int
	unitIDs := map[string]int{}
	units, err := s.registry.ListUnits(ctx, operator)
	if err != nil {
		return n, err
	}
	for _, u := range units {
		unitIDs[u.Name] = u.ID
	}

	for _, u := range f.Units {
		out, err := s.registry.CreateUnit(ctx, operator, dto.UnitRequest{
			ID: u.ID, Name: u.Name, Address: u.Address, City: u.City, State: u.State,
		})
		if err != nil {
			return n, fmt.Errorf("unidad %q: %w", u.Name, err)
		}
		unitIDs[out.Name] = out.ID
		n[0]++
	}
	for _, r := range f.Responsibles {
		unitID, ok := unitIDs[r.Unit]
		if !ok {
			return n, fmt.Errorf("responsable %q: unidad %q no existe", r.Name, r.Unit)
		}
		if _, err := s.registry.CreateResponsible(ctx, operator, dto.ResponsibleRequest{
			ID: r.ID, Name: r.Name, UnitID: unitID, Role: r.Role, Phone: r.Phone,
		}); err != nil {
			return n, fmt.Errorf("responsable %q: %w", r.Name, err)
		}
		n[1]++
	}
	for _, p := range f.Products {
		qty, err := parseQty(p.StockQty)
		if err != nil {
			return n, fmt.Errorf("producto %q: %w", p.Name, err)
		}
		if _, err := s.products.Create(ctx, operator, dto.CreateProductRequest{
			ID: p.ID, Name: p.Name, StockQty: qty, Unit: p.Unit, Category: p.Category,
		}); err != nil {
			return n, fmt.Errorf("producto %q: %w", p.Name, err)
		}
		n[2]++
	}
	for _, u := range f.Users {
		if _, err := s.users.Create(ctx, operator, dto.CreateUserRequest{
			Username: u.Username, Password: u.Password, AccessLevel: u.Level,
		}); err != nil {
			return n, fmt.Errorf("usuario %q: %w", u.Username, err)
		}
		n[3]++
	}
	for i, m := range f.Movements {
		qty, err := parseQty(m.Quantity)
		if err != nil {
			return n, fmt.Errorf("movimiento %d: %w", i+1, err)
		}
		if _, err := s.movement.RegisterMovement(ctx, operator, dto.RegisterMovementRequest{
			ProductName: m.Product, ResponsibleName: m.Responsible, UnitName: m.Unit,
			Kind: m.Kind, Quantity: qty, Supplier: m.Supplier, Reason: m.Reason, Date: m.Date,
		}); err != nil {
			return n, fmt.Errorf("movimiento %d: %w", i+1, err)
		}
		n[4]++
	}
	return n, nil
}

func parseQty(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cantidad %q inválida", s)
	}
	return d, nil
}
