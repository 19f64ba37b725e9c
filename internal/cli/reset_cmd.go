package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("refusing to reset without --yes")

func newResetCmd(flags *rootFlags, now func() time.Time) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset <child>",
		Short: "Clear every check for a child's current week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errResetNotConfirmed
			}
			a, err := setup(cmd, flags, now)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.svc.ResetWeek(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s for week starting %s\n", args[0], p.WeekStart)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing this week's checks")

	return cmd
}
