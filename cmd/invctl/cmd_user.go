package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Cuentas de acceso",
	}

	var level string
	add := &cobra.Command{
		Use:   "add <username> <password>",
		Short: "Crea una cuenta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(s *services) error {
				u, err := s.users.Create(cmd.Context(), operator, dto.CreateUserRequest{
					Username: args[0], Password: args[1], AccessLevel: level,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s)\n", u.Username, u.AccessLevel)
				return nil
			})
		},
	}
	add.Flags().StringVar(&level, "level", "VIEWER", "nivel de acceso (MANAGER, OPERATOR, VIEWER)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las cuentas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(s *services) error {
				users, err := s.users.List(cmd.Context(), operator)
				if err != nil {
					return err
				}
				rows := make([][]string, len(users))
				for i, u := range users {
					rows[i] = []string{u.Username, u.AccessLevel}
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Usuario", "Nivel"}, rows))
				return nil
			})
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
