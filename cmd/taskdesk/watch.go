package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"example.com/taskdesk/internal/render"
)

// mountable is a view that watch can keep mounted and redraw.
type mountable interface {
	Mount(ctx context.Context)
	Unmount()
	Refresh(ctx context.Context)
	Err() string
}

func (c *cli) watchCmd() *cobra.Command {
	var every time.Duration
	cmd := &cobra.Command{
		Use:       "watch [today|upcoming|lists]",
		Short:     "Keep a view mounted, redrawing it and sweeping completed tasks",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"today", "upcoming", "lists"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if every <= 0 {
				return fmt.Errorf("--every must be positive, got %s", every)
			}
			name := "today"
			if len(args) == 1 {
				name = args[0]
			}
			v, draw, err := c.watched(name)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			v.Mount(ctx)
			defer v.Unmount()
			out := cmd.OutOrStdout()
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				fmt.Fprint(out, render.Banner(v.Err()))
				fmt.Fprint(out, draw())
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					v.Refresh(ctx)
				}
			}
		},
	}
	cmd.Flags().DurationVar(&every, "every", 30*time.Second, "Redraw interval")
	return cmd
}

func (c *cli) watched(name string) (mountable, func() string, error) {
	switch name {
	case "today":
		v := c.app.Today()
		return v, func() string { return render.Rows(v.Rows(), nil) }, nil
	case "upcoming":
		v := c.app.Upcoming()
		return v, func() string { return render.Groups(v.Groups(), nil) }, nil
	case "lists":
		v := c.app.Lists()
		return v, func() string { return render.Lists(v.Lists(), 0) }, nil
	}
	return nil, nil, fmt.Errorf("unknown view %q", name)
}
