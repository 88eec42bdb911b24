package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

func newCopyCmd(a *app) *cobra.Command {
	var to, toWorkbook, toSpreadsheet, toCredentials, toDatabaseURL string
	cmd := &cobra.Command{
		Use:   "copy --to <backend>",
		Short: "Copia las cinco tablas del backend actual a otro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dst := *a.cfg
			dst.Store.Backend = to
			if toWorkbook != "" {
				dst.Store.WorkbookPath = toWorkbook
			}
			if toSpreadsheet != "" {
				dst.Store.SheetsSpreadsheetID = toSpreadsheet
			}
			if toCredentials != "" {
				dst.Store.SheetsCredentialsPath = toCredentials
			}
			if toDatabaseURL != "" {
				dst.DB.DatabaseURL = toDatabaseURL
			}
			if err := dst.Store.Validate(dst.DB); err != nil {
				return fmt.Errorf("destino: %w", err)
			}
			if dst.Store == a.cfg.Store && dst.DB == a.cfg.DB {
				return fmt.Errorf("origen y destino son el mismo almacén")
			}

			src, closeSrc, err := a.open(ctx, a.cfg, a.log)
			if err != nil {
				return fmt.Errorf("origen: %w", err)
			}
			defer closeSrc()
			tables, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("leer origen: %w", err)
			}

			out, closeDst, err := a.open(ctx, &dst, a.log)
			if err != nil {
				return fmt.Errorf("destino: %w", err)
			}
			defer closeDst()
			if err := out.Save(ctx, tables); err != nil {
				return fmt.Errorf("escribir destino: %w", err)
			}
			for _, name := range entity.AllTables {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d filas\n", name, tables.Len(name))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copiado %s -> %s\n", src.Backend(), out.Backend())
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "backend destino (workbook, sheets, postgres, memory)")
	cmd.Flags().StringVar(&toWorkbook, "to-workbook", "", "ruta de la planilla destino")
	cmd.Flags().StringVar(&toSpreadsheet, "to-spreadsheet-id", "", "id de la planilla en la nube destino")
	cmd.Flags().StringVar(&toCredentials, "to-credentials", "", "credenciales de la cuenta de servicio destino")
	cmd.Flags().StringVar(&toDatabaseURL, "to-database-url", "", "connection string de PostgreSQL destino")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
