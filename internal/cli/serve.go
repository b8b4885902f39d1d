package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/isdelr/birthdaybot-be/internal/api"
	"github.com/isdelr/birthdaybot-be/internal/monitoring"
	"github.com/isdelr/birthdaybot-be/internal/services"
)

const shutdownGrace = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides BDB_HTTP_PORT)")
	return cmd
}

func (a *app) serve(ctx context.Context, port int) error {
	startedAt := time.Now()
	logger := a.logger
	if port == 0 {
		port = a.cfg.HTTPPort
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := a.cfg.Database
	logger.Info().Str("driver", db.Driver).Str("host", db.Host).Int("port", db.Port).Msg("Connecting to store")
	logger.Debug().
		Str("name", db.Name).
		Str("user", db.User).
		Int("pool_size", db.PoolSize).
		Int("max_overflow", db.MaxOverflow).
		Dur("pool_timeout", db.PoolTimeout).
		Dur("pool_recycle", db.PoolRecycle).
		Msg("Store connection parameters")

	st, err := openStore(ctx, db)
	if err != nil {
		return fmt.Errorf("unable to establish DB connection: %w", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("creating birthdays table: %w", err)
	}

	monitor, err := monitoring.NewHealthMonitor(st, a.cfg.HealthCheckSchedule, db.PoolTimeout)
	if err != nil {
		return err
	}
	monitor.Run()
	defer monitor.Stop()

	birthdayService := services.NewBirthdayService(st, time.Now)
	statusService := services.NewStatusService(st, monitor, startedAt)
	router := api.NewRouter(logger, a.cfg.CORSOrigins, birthdayService, statusService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", srv.Addr).Str("backend", st.Backend()).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("unexpected error while serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Dur("grace_period", shutdownGrace).Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info().Msg("Server exiting")
	return nil
}
