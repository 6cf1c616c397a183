package cmd

import (
	"github.com/sayedpfe/tenantctl/internal/message"
	"github.com/sayedpfe/tenantctl/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tenantctl",
	Run: func(cmd *cobra.Command, args []string) {
		message.Info(version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
