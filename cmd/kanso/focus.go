package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/focus"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/workers"
)

type printNotifier struct {
	cmd  *cobra.Command
	feed *workers.EventFeed
}

func (n printNotifier) Notify(ev domain.Event) {
	n.feed.Notify(ev)
	if ev.Type == domain.EventFocusCompleted {
		fmt.Fprintf(n.cmd.OutOrStdout(), "\n%s focus session complete: %s\n", success.Sprint("✓"), ev.Name)
	}
}

func addFocus(topLevel *cobra.Command, opts *rootOptions) {
	var (
		minutes int
		tick    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "focus <task>",
		Short: "Run a focus countdown for a task",
		Example: `
kanso focus "Trailhead module"
kanso focus --minutes 45 "DSA: graphs"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := opts.cliLogger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			user := opts.user
			if user == "" {
				user = cfg.LocalUser
			}

			feed := workers.NewEventFeed(log, 1)
			session := focus.NewSession(user, printNotifier{cmd: cmd, feed: feed})
			if err := session.SetDuration(time.Duration(minutes) * time.Minute); err != nil {
				return err
			}
			if err := session.Start(strings.Join(args, " ")); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", bold.Sprint("Focus:"), session.Task())

			runner := focus.NewRunner(session, tick, func(s *focus.Session) {
				fmt.Fprintf(out, "\r%s %s ", bar(int(s.Progress()), 30), s.Format())
			})

			err = runner.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				fmt.Fprintf(out, "\n%s paused at %s\n", warn.Sprint("||"), session.Format())
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", int(focus.DefaultDuration/time.Minute), "session length in minutes (presets: 15, 25, 45)")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "countdown step")
	_ = cmd.Flags().MarkHidden("tick")
	topLevel.AddCommand(cmd)
}
