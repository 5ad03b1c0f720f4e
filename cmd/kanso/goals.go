package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
)

func addGoals(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Goals, overall progress and mission countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			summary, err := a.Goals.Summary(cmd.Context(), user)
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	addGoalAdd(cmd, opts)
	addGoalProgress(cmd, opts)
	addMission(cmd, opts)
	topLevel.AddCommand(cmd)
}

func addGoalAdd(parent *cobra.Command, opts *rootOptions) {
	in := services.CreateGoalInput{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			in.UserID = user
			in.Title = args[0]
			goal, err := a.Goals.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added goal %s %s %s\n",
				success.Sprint("+"), goal.Icon, goal.Title, faint.Sprint(goal.ID))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Description, "description", "", "short description")
	flags.StringVar(&in.Icon, "icon", "🎯", "icon")
	flags.StringVar(&in.Color, "color", "#3B82F6", "display colour")
	flags.IntVar(&in.Progress, "progress", 0, "starting progress")
	flags.IntVar(&in.Target, "target", 100, "target value")
	parent.AddCommand(cmd)
}

func addGoalProgress(parent *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "progress <goal-id> <value>",
		Short: "Set the progress of a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be an integer: %w", err)
			}

			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			goal, err := a.Goals.UpdateProgress(cmd.Context(), user, args[0], progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %d/%d\n",
				goal.Icon, goal.Title, bar(goal.Percent(), 15), goal.Progress, goal.Target)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addMission(parent *cobra.Command, opts *rootOptions) {
	var (
		days  int
		start string
	)

	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Show or change the mission window",
		Example: `
kanso goals mission
kanso goals mission --days 60 --start 2025-03-01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			if cmd.Flags().Changed("days") || cmd.Flags().Changed("start") {
				if !cmd.Flags().Changed("days") {
					current, err := a.Goals.Mission(cmd.Context(), user)
					if err != nil {
						return err
					}
					days = current.TotalDays
				}
				if _, err := a.Goals.SetMission(cmd.Context(), user, days, start); err != nil {
					return err
				}
			}

			summary, err := a.Goals.Summary(cmd.Context(), user)
			if err != nil {
				return err
			}
			m := summary.Mission
			fmt.Fprintf(cmd.OutOrStdout(), "mission %s .. %s (%d days)  %s days remaining\n",
				m.StartDate, m.EndDate(), m.TotalDays, bold.Sprintf("%d", summary.DaysRemaining))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "mission length in days")
	cmd.Flags().StringVar(&start, "start", "", "mission start date YYYY-MM-DD (defaults to today)")
	parent.AddCommand(cmd)
}
