package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/duedate"
	"example.com/taskdesk/internal/render"
	"example.com/taskdesk/internal/view"
)

func (c *cli) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Tasks due today, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.Today()
			v.Refresh(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), render.Rows(v.Rows(), c.listNames(cmd)))
			return bannerErr(v.Err())
		},
	}
}

func (c *cli) upcomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Tasks due from tomorrow on, grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := c.app.Upcoming()
			v.Refresh(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), render.Groups(v.Groups(), c.listNames(cmd)))
			return bannerErr(v.Err())
		},
	}
}

// listNames is best effort; rows simply lose their list tag on failure.
func (c *cli) listNames(cmd *cobra.Command) map[int64]string {
	lists, err := c.app.Client.Lists(cmd.Context())
	if err != nil {
		return nil
	}
	return render.ListNames(lists)
}

// loadAll fetches every task so ids given on the command line resolve.
func (c *cli) loadAll(cmd *cobra.Command) (*view.All, error) {
	v := c.app.All()
	v.Refresh(cmd.Context())
	if msg := v.Err(); msg != "" {
		return nil, bannerErr(msg)
	}
	return v, nil
}

func (c *cli) addCmd() *cobra.Command {
	var (
		priority, due, description string
		list                       int64
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.TaskInput{
				Title:       strings.Join(args, " "),
				Description: description,
				Priority:    domain.Priority(priority),
			}
			if in.Priority != "" && !in.Priority.Valid() {
				return fmt.Errorf("unknown priority %q", priority)
			}
			if due != "" {
				day, err := duedate.ParseDueDay(due, c.app.Classifier.Now(), c.app.Classifier.Location())
				if err != nil {
					return err
				}
				in.DueDate = domain.NewLocalTime(day)
			}
			if list > 0 {
				in.TaskListID = &list
			}
			v := c.app.All()
			if err := v.RequestCreateTask(in); err != nil {
				return err
			}
			if err := c.confirm(cmd, v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q\n", strings.TrimSpace(in.Title))
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "LOW, MEDIUM, HIGH or URGENT (default MEDIUM)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due day: today, tomorrow, next-week or YYYY-MM-DD")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().Int64VarP(&list, "list", "l", 0, "List id")
	return cmd
}

func (c *cli) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed; it is swept after the completed TTL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, v, err := c.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if t, _ := findTask(v, id); t.Completed() {
				fmt.Fprintln(cmd.OutOrStdout(), "Already completed")
				return nil
			}
			if err := v.ToggleComplete(cmd.Context(), id); err != nil {
				return err
			}
			return c.confirm(cmd, v)
		},
	}
}

func (c *cli) undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, v, err := c.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if t, _ := findTask(v, id); !t.Completed() {
				fmt.Fprintln(cmd.OutOrStdout(), "Task is not completed")
				return nil
			}
			if err := v.ToggleComplete(cmd.Context(), id); err != nil {
				return err
			}
			return bannerErr(v.Err())
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, v, err := c.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if err := v.RequestDeleteTask(id); err != nil {
				return err
			}
			return c.confirm(cmd, v)
		},
	}
}

func (c *cli) priorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <level>",
		Short: "Set a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, v, err := c.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			if err := v.SetPriority(cmd.Context(), id, domain.Priority(args[1])); err != nil {
				return err
			}
			return bannerErr(v.Err())
		},
	}
}

func (c *cli) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <over-id>",
		Short: "Move a task to another task's position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, v, err := c.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			over, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := v.Reorder(cmd.Context(), id, over); err != nil {
				return err
			}
			if err := bannerErr(v.Err()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Rows(v.Rows(), nil))
			return nil
		},
	}
}

func (c *cli) sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete tasks completed longer ago than the completed TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := c.loadAll(cmd)
			if err != nil {
				return err
			}
			n := v.Sweep(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed task(s)\n", n)
			return nil
		},
	}
}

func (c *cli) resolve(cmd *cobra.Command, arg string) (int64, *view.All, error) {
	id, err := parseID(arg)
	if err != nil {
		return 0, nil, err
	}
	v, err := c.loadAll(cmd)
	if err != nil {
		return 0, nil, err
	}
	return id, v, nil
}

func findTask(v *view.All, id int64) (domain.Task, bool) {
	for _, t := range v.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}
