// Package main provides the splitledger CLI. It wires the serve, migrate and
// export subcommands, loads configuration and initializes logging.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

// app is the state shared by subcommands once the root command has loaded
// the configuration.
type app struct {
	envFile string
	cfg     *config.Config
	logger  *slog.Logger
	stderr  io.Writer
}

// storeOptions maps the database section of the configuration.
func (a *app) storeOptions() sqlite.Options {
	return sqlite.Options{
		OpTimeout:           a.cfg.Database.OpTimeout,
		BusyTimeout:         a.cfg.Database.BusyTimeout,
		UserExpenseLimit:    a.cfg.Ledger.UserExpenseLimit,
		MaxUserExpenseLimit: a.cfg.Ledger.UserExpenseMaxLimit,
	}
}

func (a *app) busyTimeoutMS() int {
	return int(a.cfg.Database.BusyTimeout / time.Millisecond)
}

// openStore opens the ledger database and returns it with a close func.
func (a *app) openStore() (*sqlite.SQLiteStore, func(), error) {
	store, err := sqlite.New(a.cfg.Database.Path, a.storeOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("could not open ledger database: %w", err)
	}

	return store, func() {
		a.logger.Debug("closing ledger database...")
		if err := store.Close(); err != nil {
			a.logger.Warn("could not close ledger database", "error", err)
		}
	}, nil
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "splitledger",
		Short:         "Shared expense ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, a.stderr)
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file to load before reading the environment (default .env if present)")

	rootCmd.AddCommand(
		serveCommand(a),
		migrateCommand(a),
		exportCommand(a),
	)

	return rootCmd
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
