package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chartmaker/internal/week"
)

func newWeekCmd(now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Print the start of the current chart week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := now()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (today is day %d, %s)\n",
				week.StartDate(t), week.DayIndex(t), t.Weekday())
			return nil
		},
	}
}
