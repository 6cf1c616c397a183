package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var intuneCmd = &cobra.Command{
	Use:   "intune",
	Short: "Intune device enrollment administration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(intuneCmd)
}
