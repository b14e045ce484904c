package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/server"
)

func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the ledger API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireServeSecrets(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv := server.New(server.Deps{
				Store:      store,
				JWTManager: auth.NewJWTManager(a.cfg.JWT.Secret, a.cfg.JWT.TokenDuration),
				Metrics:    metrics.New(reg),
				Gatherer:   reg,
				Logger:     a.logger,
			}, server.NewOptions(a.cfg))

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting webserver...", "addr", srv.Addr, "environment", a.cfg.Environment)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// wait for interrupt
			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
			defer cancel()

			a.logger.Info("stopping webserver...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("could not stop webserver", "error", err)
				return err
			}

			return nil
		},
	}
}
