package cli

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/isdelr/birthdaybot-be/internal/birthday"
	"github.com/isdelr/birthdaybot-be/internal/validation"
)

func newDaysCommand() *cobra.Command {
	var todayFlag string
	cmd := &cobra.Command{
		Use:   "days YYYY-MM-DD",
		Short: "Print the number of days until the next birthday for a date of birth",
		Args:  cobra.ExactArgs(1),
		// Offline: no configuration or store needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			today := civil.DateOf(time.Now())
			if todayFlag != "" {
				d, err := civil.ParseDate(todayFlag)
				if err != nil {
					return fmt.Errorf("%w: --today %q", validation.ErrInvalidDateFormat, todayFlag)
				}
				today = d
			}

			dob, err := validation.DateOfBirth(args[0], today)
			if err != nil {
				return err
			}

			days := birthday.DaysUntilNext(dob, today)
			if days == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Happy birthday!")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d day(s) until the next birthday on %s\n", days, birthday.Next(dob, today))
			return nil
		},
	}
	cmd.Flags().StringVar(&todayFlag, "today", "", "reference date (YYYY-MM-DD), defaults to the local date")
	return cmd
}
