package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/balance"
	"github.com/mmynk/splitledger/internal/export"
)

// exportCommand writes a user's balance sheet as CSV.
func exportCommand(a *app) *cobra.Command {
	var userID, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exports a user's balance sheet as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			sheet, err := balance.New(store, a.logger).UserBalanceSheet(cmd.Context(), userID)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.WriteUserSheet(&buf, sheet); err != nil {
				return err
			}

			if out == "" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if out == "." {
				out = export.FileName(userID)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("could not write %s: %w", out, err)
			}

			a.logger.Info("balance sheet exported", "user_id", userID, "path", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user ID whose balance sheet to export")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file; "." uses the download file name, empty writes to stdout`)

	return cmd
}
