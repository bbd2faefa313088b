package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tpodg/startproxy/internal/tunnel"
)

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Print the ssh command for a request without running it",
	Long:  `Read the same JSON request from stdin and print the shell-quoted ssh invocation that would be launched.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proxyApp := getApp(cmd)

		req, err := tunnel.DecodeRequest(cmd.InOrStdin())
		if err != nil {
			return err
		}
		sshArgs, err := tunnel.BuildArgs(req)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), tunnel.CommandLine(proxyApp.Launcher.Binary(), sshArgs))
		return err
	},
}

func init() {
	rootCmd.AddCommand(commandCmd)
}
