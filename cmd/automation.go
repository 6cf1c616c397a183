package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var automationCmd = &cobra.Command{
	Use:     "automation",
	Aliases: []string{"aa"},
	Short:   "Azure Automation account administration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(automationCmd)
}
