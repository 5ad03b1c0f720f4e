package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

func addLearning(topLevel *cobra.Command, opts *rootOptions) {
	var filter string

	cmd := &cobra.Command{
		Use:   "learning",
		Short: "Topics recorded on completed habits, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, user, closeApp, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			log, err := a.Learning.Log(cmd.Context(), user, filter)
			if err != nil {
				return err
			}
			printLearning(cmd.OutOrStdout(), log)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "domain", domain.LearningDomainAll, "Salesforce, Java, Web Dev, DSA, Fitness, Other or All")
	topLevel.AddCommand(cmd)
}

func addQuote(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			day := domain.NewDayKey(time.Now(), cfg.Location)
			printQuote(cmd.OutOrStdout(), domain.QuoteForDay(day))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
