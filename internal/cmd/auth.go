package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retrospace/messenger-cli/pkg/service"
)

var authEmail string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Log in and out of your Retrospace account",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Retrospace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Login(authEmail)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService().Logout()
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := service.NewAuthService().RequireSession()
		if err != nil {
			return err
		}
		fmt.Printf("@%s (%s)\n", user.Username, user.DisplayName)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&authEmail, "email", "", "Account email (prompted if omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}
