package cli

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/spf13/cobra"
)

func newWeekCmd(opts *options) *cobra.Command {
	var anchor string

	c := &cobra.Command{
		Use:   "week",
		Short: "Print the Monday-start week around --anchor with each day's status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, evaluator, today, err := opts.env()
			if err != nil {
				return err
			}
			a := today
			if anchor != "" {
				if a, err = calendar.ParseDate(anchor); err != nil {
					return fmt.Errorf("invalid --anchor: %w", err)
				}
			}

			view := evaluator.WeekView(a, today)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s → %s)\n", view.Label, view.Start, view.End)
			for _, d := range view.Days {
				fmt.Fprintf(out, "  %s %02d  %s\n", d.Weekday, d.Date.Day, d.Status)
			}
			if years := evaluator.UncoveredYears(view.Start, view.End); len(years) > 0 {
				fmt.Fprintf(out, "warning: no holiday calendar for %v\n", years)
			}
			return nil
		},
	}
	c.Flags().StringVar(&anchor, "anchor", "", "any day of the week to show (YYYY-MM-DD, default today)")
	return c
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check DATE",
		Short: "Tell whether DATE (YYYY-MM-DD) can be booked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, evaluator, today, err := opts.env()
			if err != nil {
				return err
			}
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reasons := evaluator.Reasons(d, today)
			if len(reasons) == 0 {
				fmt.Fprintf(out, "%s: bookable (%s)\n", d, calendar.LongLabel(d))
			} else {
				names := make([]string, 0, len(reasons))
				for _, r := range reasons {
					names = append(names, string(r))
				}
				fmt.Fprintf(out, "%s: not bookable (%s)\n", d, strings.Join(names, ", "))
			}
			if !evaluator.Covers(d.Year) {
				fmt.Fprintf(out, "warning: no holiday calendar for %d\n", d.Year)
			}
			return nil
		},
	}
}
