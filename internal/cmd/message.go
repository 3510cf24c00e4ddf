package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retrospace/messenger-cli/pkg/service"
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Direct messaging commands",
	Long:  "Send and read direct messages with your friends",
}

var messageSendCmd = &cobra.Command{
	Use:   "send <username>",
	Short: "Send a direct message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := newMessenger()
		if err != nil {
			return err
		}

		friend, err := service.NewFriendService().FindFriend(args[0])
		if err != nil {
			return err
		}

		content, err := ms.Compose(friend.ID)
		if err != nil {
			return err
		}

		if content == "" {
			fmt.Fprintf(os.Stderr, "Message cannot be empty.\n")
			os.Exit(1)
		}

		msg, err := ms.Send(friend.ID, content)
		if err != nil {
			return err
		}

		fmt.Printf("Sent to @%s at %s\n", friend.Username, msg.Time().Format("15:04:05"))
		return nil
	},
}

var messageInboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List your conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := newMessenger()
		if err != nil {
			return err
		}
		return ms.ListConversations()
	},
}

var messageThreadCmd = &cobra.Command{
	Use:   "thread <username>",
	Short: "View the conversation with a friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := newMessenger()
		if err != nil {
			return err
		}

		friend, err := service.NewFriendService().FindFriend(args[0])
		if err != nil {
			return err
		}

		return ms.ShowConversation(friend.ID, friend.Username)
	},
}

var messageUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show unread message count",
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := newMessenger()
		if err != nil {
			return err
		}
		return ms.ShowUnreadCount()
	},
}

func init() {
	messageCmd.AddCommand(messageSendCmd)
	messageCmd.AddCommand(messageInboxCmd)
	messageCmd.AddCommand(messageThreadCmd)
	messageCmd.AddCommand(messageUnreadCmd)
}
