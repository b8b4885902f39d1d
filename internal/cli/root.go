// Package cli wires configuration, logging and the store into cobra commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/isdelr/birthdaybot-be/internal/config"
	"github.com/isdelr/birthdaybot-be/internal/database"
	"github.com/isdelr/birthdaybot-be/internal/logger"
	"github.com/isdelr/birthdaybot-be/internal/postgres"
	"github.com/isdelr/birthdaybot-be/internal/store"
)

// app carries state shared by commands after PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCommand builds the birthdaybot command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "birthdaybot",
		Short:         "HTTP service that stores dates of birth and counts down to birthdays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			a.cfg = cfg
			a.logger = logger.Init(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), 0)
		},
	}

	root.AddCommand(newServeCommand(a), newMigrateCommand(a), newDaysCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("birthdaybot failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore connects to the configured backend.
func openStore(ctx context.Context, cfg config.Database) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		db, dialect, err := database.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return database.NewBirthdayRepository(db, dialect, cfg.PoolTimeout), nil
	}
}
