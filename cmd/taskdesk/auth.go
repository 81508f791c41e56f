package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/session"
)

func (c *cli) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Terminal.SetAtLogin(true)
			res, err := c.app.Client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(res, username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", os.Getenv("TASKDESK_PASSWORD"), "Password, or env TASKDESK_PASSWORD")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (c *cli) signupCmd() *cobra.Command {
	var creds domain.Credentials
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Terminal.SetAtLogin(true)
			res, err := c.app.Client.Signup(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created, logged in as %s\n", displayName(res, creds.Username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", os.Getenv("TASKDESK_PASSWORD"), "Password, or env TASKDESK_PASSWORD")
	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "Email address")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session state and token expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, ins, err := c.app.Monitor.Current()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "session: %s\n", ins.State)
			if sess.User != nil {
				fmt.Fprintf(out, "user: %s\n", sess.User.Username)
			}
			if ins.State == session.Valid || ins.State == session.ExpiringSoon {
				fmt.Fprintf(out, "expires: %s (in %s)\n",
					ins.ExpiresAt.Format(time.RFC1123),
					ins.ExpiresAt.Sub(c.app.Classifier.Now()).Round(time.Minute))
			}
			return nil
		},
	}
}

func displayName(res domain.AuthResult, fallback string) string {
	if res.User != nil && res.User.Username != "" {
		return res.User.Username
	}
	return fallback
}
