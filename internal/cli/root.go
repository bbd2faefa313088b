package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tpodg/startproxy/internal/app"
	"github.com/tpodg/startproxy/internal/config"
)

type contextKey string

const appKey contextKey = "app"

// exit terminates the process without running deferred calls.
var exit = os.Exit

var rootCmd = &cobra.Command{
	Use:   "start-proxy",
	Short: "Start a local SSH tunnel from a JSON request on stdin",
	Long: `start-proxy reads {"ssh_user", "instance", "ssh_private_key", "ssh_extra_args"}
as JSON from stdin, launches a detached ssh client forwarding local port 8888
to localhost:8888 on the instance, and prints {"port":"8888"}.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		proxyApp := app.New(cfg)
		ctx := context.WithValue(cmd.Context(), appKey, proxyApp)
		cmd.SetContext(ctx)

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		proxyApp := getApp(cmd)
		if err := proxyApp.Launcher.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
		// The result is already flushed; skip cleanup so nothing waits on the child.
		exit(0)
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", fmt.Sprintf("config file (default is $HOME/%s)", config.DefaultConfigFileName))
}

func getApp(cmd *cobra.Command) *app.App {
	if a, ok := cmd.Context().Value(appKey).(*app.App); ok {
		return a
	}
	return nil
}
