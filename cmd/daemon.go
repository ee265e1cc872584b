package cmd

import (
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/daemon"
	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the daemon in the foreground",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.ReadConfigFile()
		daemon.RunDaemon()
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
