package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "seafight",
		Short: "Interactive client for the Sea Fight server",
		Long: `seafight is the interactive console client for the Sea Fight server.

It connects to the server over its named channel, opens a personal
notification channel and runs a command loop (/create, /join, /list,
/stats, /shoot, /leave, /quit) while server notifications are printed
asynchronously.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Login == "" {
				fmt.Print("=== SEA FIGHT CLIENT ===\nEnter your login: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				cfg.Login = strings.TrimSpace(line)
			}
			if cfg.Login == "" {
				return fmt.Errorf("login must not be empty")
			}

			session, err := NewSession(cfg)
			if err != nil {
				return err
			}
			return session.Run()
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&cfg.PipeDir, "pipe-dir", cfg.PipeDir, "Directory of the server and client channels (env: SEAFIGHT_PIPE_DIR)")
	rootCmd.Flags().StringVar(&cfg.Login, "login", cfg.Login, "Player login (env: SEAFIGHT_LOGIN)")

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
