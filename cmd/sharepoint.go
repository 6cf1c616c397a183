package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var sharepointCmd = &cobra.Command{
	Use:     "sharepoint",
	Aliases: []string{"spo"},
	Short:   "SharePoint Online site administration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(sharepointCmd)
}
