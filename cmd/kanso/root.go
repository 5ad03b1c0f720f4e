package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/app"
	"github.com/comitanigiacomo/kanso-dashboard/internal/config"
	"github.com/comitanigiacomo/kanso-dashboard/internal/logger"
)

type rootOptions struct {
	envFile string
	storage string
	user    string
	noColor bool
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "kanso",
		Short:        "Habits, focus sessions and goals from the command line.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment")
	flags.StringVar(&opts.storage, "storage", "", "override STORAGE (memory, local or postgres)")
	flags.StringVar(&opts.user, "user", "", "user id (defaults to LOCAL_USER)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr at debug level")

	addServe(cmd, opts)
	addToday(cmd, opts)
	addAdd(cmd, opts)
	addToggle(cmd, opts)
	addTopic(cmd, opts)
	addWeekly(cmd, opts)
	addHeatmap(cmd, opts)
	addCalendar(cmd, opts)
	addGoals(cmd, opts)
	addLearning(cmd, opts)
	addQuote(cmd, opts)
	addFocus(cmd, opts)
	addToken(cmd, opts)

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.envFile, config.WithStorage(o.storage))
}

// cliLogger stays quiet unless asked; short commands print their own output.
func (o *rootOptions) cliLogger() (*zap.Logger, error) {
	if !o.verbose {
		return zap.NewNop(), nil
	}
	return logger.New("debug", true)
}

// open wires the application for a one-shot command. The returned close
// function flushes queued writes.
func (o *rootOptions) open(ctx context.Context) (*app.App, string, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	log, err := o.cliLogger()
	if err != nil {
		return nil, "", nil, err
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open storage: %w", err)
	}

	user := o.user
	if user == "" {
		user = cfg.LocalUser
	}

	return a, user, func() {
		a.Close()
		_ = log.Sync()
	}, nil
}
