package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var entraCmd = &cobra.Command{
	Use:     "entra",
	Aliases: []string{"aad"},
	Short:   "Entra ID directory administration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

var entraRoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Directory role modules",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func init() {
	entraCmd.AddCommand(entraRoleCmd)
	rootCmd.AddCommand(entraCmd)
}
