package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"example.com/taskdesk/internal/app"
	"example.com/taskdesk/internal/config"
	"example.com/taskdesk/internal/logger"
	"example.com/taskdesk/internal/render"
	"example.com/taskdesk/internal/view"
)

var errCancelled = errors.New("cancelled")

type cli struct {
	cfg config.Config
	yes bool
	app *app.App
	// opts are extra app options, set by tests.
	opts []app.Option
}

// confirmer is the confirmation surface every view shares.
type confirmer interface {
	Pending() (view.Pending, bool)
	Confirm(ctx context.Context) error
	Cancel()
	Err() string
}

func newRootCmd(cfg config.Config, opts ...app.Option) *cobra.Command {
	c := &cli{cfg: cfg, opts: opts}
	root := &cobra.Command{
		Use:           "taskdesk",
		Short:         "A terminal client for the task manager service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.Configure(log.StandardLogger(), cmd.ErrOrStderr(), c.cfg.LogLevel, c.cfg.LogFormat)
			a, err := app.New(c.cfg, cmd.ErrOrStderr(), c.opts...)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&c.cfg.APIURL, "api-url", cfg.APIURL, "Task service base URL (env TASKDESK_API_URL)")
	f.DurationVar(&c.cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (env TASKDESK_TIMEOUT)")
	f.StringVar(&c.cfg.SessionFile, "session-file", cfg.SessionFile, "Where the session token is kept (env TASKDESK_SESSION_FILE)")
	f.StringVar(&c.cfg.TZ, "tz", cfg.TZ, "Timezone for due dates, IANA name or offset like +03:00 (env TASKDESK_TZ)")
	f.StringVar(&c.cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (env TASKDESK_LOG_LEVEL)")
	f.BoolVarP(&c.yes, "yes", "y", false, "Skip confirmation prompts")

	root.AddCommand(
		c.loginCmd(), c.signupCmd(), c.logoutCmd(), c.statusCmd(),
		c.todayCmd(), c.upcomingCmd(),
		c.addCmd(), c.doneCmd(), c.undoCmd(), c.rmCmd(), c.priorityCmd(), c.moveCmd(),
		c.listsCmd(), c.sweepCmd(), c.watchCmd(),
	)
	return root
}

// confirm shows the open confirmation and dispatches it when the user agrees.
// A failed dispatch surfaces as the view's banner.
func (c *cli) confirm(cmd *cobra.Command, v confirmer) error {
	p, ok := v.Pending()
	if !ok {
		return nil
	}
	if !c.yes {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, render.Dialog(p.Prompt()))
		fmt.Fprint(out, "[y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			v.Cancel()
			return errCancelled
		}
	}
	if err := v.Confirm(cmd.Context()); err != nil {
		return err
	}
	return bannerErr(v.Err())
}

func bannerErr(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
