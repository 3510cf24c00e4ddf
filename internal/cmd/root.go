package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retrospace/messenger-cli/pkg/config"
	"github.com/retrospace/messenger-cli/pkg/logger"
	"github.com/retrospace/messenger-cli/pkg/service"
	"github.com/retrospace/messenger-cli/pkg/store"
	"github.com/retrospace/messenger-cli/pkg/websocket"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "retrospace-msg",
	Short: "Retrospace Messenger - direct messaging from the terminal",
	Long: `Retrospace Messenger is a command-line client for the Retrospace
nostalgia social network's direct-messaging system. Chat with friends,
watch for live messages, and manage your emoticons without leaving
the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		config.SetString("output.format", outputFmt)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/retrospace/messenger/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(emoticonCmd)
	rootCmd.AddCommand(watchCmd)
}

// wsConfig builds the socket configuration from settings
func wsConfig() websocket.Config {
	cfg := websocket.DefaultConfig()
	if host := config.GetString("ws.host"); host != "" {
		cfg.Host = host
	}
	if port := config.GetInt("ws.port"); port != 0 {
		cfg.Port = port
	}
	if path := config.GetString("ws.path"); path != "" {
		cfg.Path = path
	}
	cfg.UseTLS = config.GetBool("ws.use_tls")
	if v := config.GetInt("ws.connect_timeout_ms"); v != 0 {
		cfg.ConnectTimeoutMs = v
	}
	if v := config.GetInt("ws.heartbeat_interval_ms"); v != 0 {
		cfg.HeartbeatIntervalMs = v
	}
	if v := config.GetInt("ws.reconnect_base_delay_ms"); v != 0 {
		cfg.ReconnectBaseDelayMs = v
	}
	if v := config.GetInt("ws.max_reconnect_attempts"); v != 0 {
		cfg.MaxReconnectAttempts = v
	}
	return cfg
}

// newMessenger builds a session-scoped messenger: authenticated user,
// socket client, and conversation store wired together
func newMessenger() (*service.MessengerService, error) {
	auth := service.NewAuthService()

	user, err := auth.RequireSession()
	if err != nil {
		return nil, err
	}
	logger.WithUser(user.ID)

	token, err := auth.Token()
	if err != nil {
		return nil, err
	}

	conn := websocket.NewClient(wsConfig())
	conn.SetSession(user.ID, token)

	st := store.New(user.ID, conn)
	ms := service.NewMessengerService(user, conn, st)

	if err := ms.LoadEmoticonTable(); err != nil {
		// Messages still render as plain text without the table
		logger.Warn("Failed to load emoticon table", "error", err)
	}

	return ms, nil
}
