package cmd

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for live messages",
	Long: `Connects to the messaging socket and prints incoming messages,
typing indicators, and presence changes as they arrive. The connection
retries automatically with backoff if it drops.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := newMessenger()
		if err != nil {
			return err
		}
		return ms.Watch()
	},
}
