package cmd

import (
	"github.com/spf13/cobra"

	"github.com/retrospace/messenger-cli/pkg/service"
)

var (
	emoticonName string
	emoticonCode string
)

var emoticonCmd = &cobra.Command{
	Use:   "emoticon",
	Short: "Emoticon commands",
	Long:  "List the emoticon table and upload custom emoticons",
}

var emoticonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available emoticons",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := service.NewAuthService().RequireSession(); err != nil {
			return err
		}
		return service.NewEmoticonService().ListEmoticons()
	},
}

var emoticonUploadCmd = &cobra.Command{
	Use:   "upload <image-file>",
	Short: "Upload a custom emoticon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := service.NewAuthService().RequireSession(); err != nil {
			return err
		}
		return service.NewEmoticonService().Upload(emoticonName, emoticonCode, args[0])
	},
}

func init() {
	emoticonUploadCmd.Flags().StringVar(&emoticonName, "name", "", "Display name for the emoticon")
	emoticonUploadCmd.Flags().StringVar(&emoticonCode, "code", "", "Text trigger, e.g. :party:")
	_ = emoticonUploadCmd.MarkFlagRequired("code")

	emoticonCmd.AddCommand(emoticonListCmd)
	emoticonCmd.AddCommand(emoticonUploadCmd)
}
