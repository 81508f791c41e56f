package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/render"
	"example.com/taskdesk/internal/view"
)

func (c *cli) listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show task lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := c.loadLists(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Lists(v.Lists(), 0))
			return nil
		},
	}
	cmd.AddCommand(c.listShowCmd(), c.listAddCmd(), c.listRmCmd())
	return cmd
}

func (c *cli) loadLists(cmd *cobra.Command) (*view.Lists, error) {
	v := c.app.Lists()
	if err := v.RefreshLists(cmd.Context()); err != nil {
		return nil, bannerErr(v.Err())
	}
	return v, nil
}

func (c *cli) listShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the tasks of one list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := c.loadLists(cmd)
			if err != nil {
				return err
			}
			if err := v.Select(cmd.Context(), id); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, render.Lists(v.Lists(), id))
			fmt.Fprintln(out)
			fmt.Fprint(out, render.Rows(v.Rows(), render.ListNames(v.Lists())))
			return bannerErr(v.Err())
		},
	}
}

func (c *cli) listAddCmd() *cobra.Command {
	var color, description string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.loadLists(cmd)
			if err != nil {
				return err
			}
			in := domain.ListInput{Name: strings.Join(args, " "), Color: color, Description: description}
			if err := v.RequestCreateList(in); err != nil {
				return err
			}
			if err := c.confirm(cmd, v); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Lists(v.Lists(), 0))
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "List color as #RRGGBB (default "+domain.DefaultListColor+")")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func (c *cli) listRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list; its tasks move to no list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := c.loadLists(cmd)
			if err != nil {
				return err
			}
			if err := v.RequestDeleteList(id); err != nil {
				return err
			}
			return c.confirm(cmd, v)
		},
	}
}
