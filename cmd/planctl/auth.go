package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	loginCmd := &cobra.Command{Use: "login", Short: "Sign in to the server"}

	var email, password string
	guestCmd := &cobra.Command{
		Use:   "guest",
		Short: "Sign in with the guest credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			session, err := client.SignInWithPassword(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Signed in as %s\n", session.User.Email)
			return nil
		},
	}
	guestCmd.Flags().StringVarP(&email, "email", "e", "guest@planboard.local", "Guest email")
	guestCmd.Flags().StringVarP(&password, "password", "p", "", "Guest password (required)")
	_ = guestCmd.MarkFlagRequired("password")
	loginCmd.AddCommand(guestCmd)

	var linkEmail string
	magicCmd := &cobra.Command{
		Use:   "magic",
		Short: "Request a magic sign-in link",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			resp, err := client.RequestMagicLink(cmd.Context(), linkEmail, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, resp.Message)
			if resp.Link != "" {
				fmt.Fprintln(os.Stdout, resp.Link)
			}
			return nil
		},
	}
	magicCmd.Flags().StringVarP(&linkEmail, "email", "e", "", "Email address (required)")
	_ = magicCmd.MarkFlagRequired("email")
	loginCmd.AddCommand(magicCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Exchange a magic link token for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			session, err := client.VerifyMagicLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Signed in as %s\n", session.User.Email)
			return nil
		},
	}
	loginCmd.AddCommand(verifyCmd)

	rootCmd.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			if err := client.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Signed out")
			return nil
		},
	}
	rootCmd.AddCommand(logoutCmd)

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			user, err := client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	rootCmd.AddCommand(whoamiCmd)
}
