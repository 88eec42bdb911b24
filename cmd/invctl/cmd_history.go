package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
)

const historyPageSize = 500

func newHistoryCmd(a *app) *cobra.Command {
	var q dto.HistoryQuery
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Muestra el historial de movimientos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withServices(ctx, func(s *services) error {
				if pdfPath != "" {
					doc, err := s.history.PDF(ctx, operator, q)
					if err != nil {
						return err
					}
					if err := os.WriteFile(pdfPath, doc, 0o644); err != nil {
						return fmt.Errorf("escribir %s: %w", pdfPath, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "historial exportado a %s\n", pdfPath)
					return nil
				}

				var rows [][]string
				page := q
				page.Limit = historyPageSize
				for {
					res, err := s.history.History(ctx, operator, page)
					if err != nil {
						return err
					}
					for _, r := range res.Items {
						rows = append(rows, []string{
							r.Date, r.ProductID, r.ProductName, r.Kind, r.Quantity.String(),
							r.ResponsibleName, r.UnitName, r.Supplier, r.Reason,
						})
					}
					page.Offset += len(res.Items)
					if len(res.Items) == 0 || page.Offset >= res.Page.Total {
						break
					}
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "sin movimientos para los filtros indicados")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Fecha", "ID", "Producto", "Tipo", "Cantidad", "Responsable", "Unidad", "Proveedor", "Razón"},
					rows,
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&q.Unit, "unit", "", "nombre de la unidad (vacío o ALL = todas)")
	cmd.Flags().StringVar(&q.From, "from", "", "desde, inclusivo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.To, "to", "", "hasta, inclusivo (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "orden por fecha (asc, desc)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "exportar a PDF en la ruta indicada")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
