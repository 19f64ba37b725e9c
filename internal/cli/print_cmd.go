package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chartmaker/internal/layout"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/week"
)

func newPrintCmd(flags *rootFlags, now func() time.Time) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "print <child>",
		Short: "Render a child's chart as printable text pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags, now)
			if err != nil {
				return err
			}
			defer a.Close()

			size := a.cfg.PageSize
			if cmd.Flags().Changed("page-size") {
				size = pageSize
			}
			if !layout.ValidPageSize(size) {
				return fmt.Errorf("page size %d must be one of %v", size, layout.PageSizes)
			}

			key := args[0]
			c, err := a.svc.Chart(key)
			if err != nil {
				return err
			}
			pages, err := a.svc.Pages(key, size)
			if err != nil {
				return err
			}
			p, err := a.svc.Progress(cmd.Context(), key)
			if err != nil {
				return err
			}
			return renderPrint(cmd.OutOrStdout(), c, pages, p)
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", layout.DefaultPageSize, "Tasks per page (4, 6, 8 or 10)")

	return cmd
}

func checkRow(days []bool) string {
	cells := make([]string, len(days))
	for i, done := range days {
		if done {
			cells[i] = "[x]"
		} else {
			cells[i] = "[ ]"
		}
	}
	return strings.Join(cells, "\t")
}

// renderPrint writes one block per page followed by the chore list and
// the reward goal.
func renderPrint(w io.Writer, c model.Chart, pages [][]model.Task, p model.WeekProgress) error {
	name := c.ChildName
	if name == "" {
		name = "Chart"
	}
	header := "\t" + strings.Join(week.Labels[:], "\t")

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "%s: week of %s\n", name, p.WeekStart)
	if len(pages) == 0 {
		fmt.Fprintln(tw, "(no tasks)")
	}
	for i, page := range pages {
		fmt.Fprintf(tw, "\nPage %d of %d\n", i+1, len(pages))
		fmt.Fprintln(tw, header)
		for _, t := range page {
			fmt.Fprintf(tw, "%s (%s)\t%s\n", t.Title, t.Category, checkRow(model.Checks(p.TaskChecks, t.ID)))
		}
	}

	if len(c.Chores) > 0 {
		fmt.Fprintln(tw, "\nChores")
		fmt.Fprintln(tw, header)
		for _, ch := range c.Chores {
			fmt.Fprintf(tw, "%s %s\t%s\n", ch.Title, ch.Value, checkRow(model.Checks(p.ChoreChecks, ch.ID)))
		}
	}

	if g := c.RewardGoal; g.Name != "" {
		fmt.Fprintf(tw, "\nSaving for: %s (%s%s)\n", g.Name, g.CurrencySymbol, g.TargetAmount)
	}
	return tw.Flush()
}
