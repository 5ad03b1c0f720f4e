package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
)

func addWeekly(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Progress over the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			wp, err := a.Stats.Weekly(cmd.Context(), user)
			if err != nil {
				return err
			}
			printWeekly(cmd.OutOrStdout(), wp)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addHeatmap(topLevel *cobra.Command, opts *rootOptions) {
	var days int

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Activity heatmap with current and longest streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			hs, err := a.Stats.Heatmap(cmd.Context(), user, days)
			if err != nil {
				return err
			}
			printHeatmap(cmd.OutOrStdout(), hs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", services.HeatmapWindowDays, "number of trailing days")
	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command, opts *rootOptions) {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Month view of completed habits",
		Example: `
kanso calendar
kanso calendar --year 2025 --month 2
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			today := a.Stats.Today()
			now := today.Time(a.Config.Location)
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			cal, err := a.Stats.Calendar(cmd.Context(), user, year, time.Month(month))
			if err != nil {
				return err
			}
			printCalendar(cmd.OutOrStdout(), cal, today)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year (defaults to the current one)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (defaults to the current one)")
	topLevel.AddCommand(cmd)
}
