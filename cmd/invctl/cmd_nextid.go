package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

func newNextIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "next-id <produtos|responsaveis|unidades>",
		Short:     "Siguiente ID libre de una tabla",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(entity.TableProducts), string(entity.TableResponsibles), string(entity.TableUnits)},
		RunE: func(cmd *cobra.Command, args []string) error {
			table := entity.TableName(strings.ToLower(strings.TrimSpace(args[0])))
			return a.withServices(cmd.Context(), func(s *services) error {
				res, err := s.products.NextID(cmd.Context(), operator, table)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.NextID)
				return nil
			})
		},
	}
}
