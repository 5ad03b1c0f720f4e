package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func addToday(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			stats, err := a.Habits.TodayStats(cmd.Context(), user)
			if err != nil {
				return err
			}
			printHabits(cmd.OutOrStdout(), stats.Date, stats.Habits, stats.Stats)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom habit for today",
		Example: `
kanso add Meditation
kanso add "Read 10 pages"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			habit, err := a.Habits.AddCustomHabit(cmd.Context(), user, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added %s %s %s\n",
				success.Sprint("+"), habit.Icon, habit.Name, faint.Sprint(habit.ID))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addToggle(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "toggle <habit-id>",
		Short: "Mark a habit done or undone for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			habit, err := a.Habits.ToggleHabit(cmd.Context(), user, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if habit.Completed {
				fmt.Fprintf(out, "%s %s %s completed\n", check(true), habit.Icon, habit.Name)
			} else {
				fmt.Fprintf(out, "%s %s %s reopened\n", check(false), habit.Icon, habit.Name)
			}

			today, err := a.Habits.TodayStats(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d/%d\n", bar(today.Stats.Percentage, 20), today.Stats.CompletedCount, today.Stats.Total)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addTopic(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "topic <habit-id> <topic>",
		Short: "Record what you worked on for a habit today",
		Example: `
kanso topic java "streams and collectors"
kanso topic dsa ""
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			habit, err := a.Habits.SetTopic(cmd.Context(), user, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", habit.Icon, habit.Name, habit.Topic)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
