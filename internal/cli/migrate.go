package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the birthdays table if it does not already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(cmd.Context(), a.cfg.Database)
			if err != nil {
				return fmt.Errorf("unable to establish DB connection: %w", err)
			}
			defer st.Close()

			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info().Str("backend", st.Backend()).Msg("Birthdays table is in place")
			fmt.Fprintln(cmd.OutOrStdout(), "birthdays table ready")
			return nil
		},
	}
}
