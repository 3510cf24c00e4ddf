package cmd

import (
	"github.com/spf13/cobra"

	"github.com/retrospace/messenger-cli/pkg/service"
)

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Friends list commands",
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your friends and their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := service.NewAuthService().RequireSession(); err != nil {
			return err
		}
		return service.NewFriendService().ListFriends()
	},
}

var friendsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List pending friend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := service.NewAuthService().RequireSession(); err != nil {
			return err
		}
		return service.NewFriendService().ListRequests()
	},
}

func init() {
	friendsCmd.AddCommand(friendsListCmd)
	friendsCmd.AddCommand(friendsRequestsCmd)
}
