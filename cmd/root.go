package cmd

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/sayedpfe/tenantctl/internal/logs"
	"github.com/sayedpfe/tenantctl/internal/message"
	"github.com/sayedpfe/tenantctl/modules"
	o "github.com/sayedpfe/tenantctl/modules/options"
	"github.com/sayedpfe/tenantctl/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tenantctl",
	Short: "tenantctl administers Microsoft 365 tenants: Entra ID roles, SharePoint sites, Intune enrollment and the automation account behind them.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")
		silent, _ := cmd.Flags().GetBool("silent")
		noColor, _ := cmd.Flags().GetBool("no-color")
		message.SetQuiet(quiet)
		message.SetSilent(silent)
		message.SetNoColor(noColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logs.ConsoleLogger()
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file (default is $HOME/.tenantctl.yaml)")
	rootCmd.PersistentFlags().StringP(o.OutputOpt.Name, o.OutputOpt.Short, o.OutputOpt.Value, o.OutputOpt.Description)
	rootCmd.PersistentFlags().StringP(o.FileNameOpt.Name, o.FileNameOpt.Short, o.FileNameOpt.Value, o.FileNameOpt.Description)
	rootCmd.PersistentFlags().String(o.JqFilterOpt.Name, o.JqFilterOpt.Value, o.JqFilterOpt.Description)
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress informational messages")
	rootCmd.PersistentFlags().Bool("silent", false, "suppress all messages")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tenantctl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tenantctl")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func options2Flag(options []*types.Option, common []*types.Option, cmd *cobra.Command) {
	for _, option := range options {
		option2Flag(option, cmd)
	}

	for _, option := range common {
		option2Flag(option, cmd)
	}
}

func option2Flag(option *types.Option, cmd *cobra.Command) {
	switch option.Type {
	case types.String:
		cmd.Flags().StringP(option.Name, option.Short, option.Value, option.Description)
	case types.Bool:
		value, _ := strconv.ParseBool(option.Value)
		cmd.Flags().BoolP(option.Name, option.Short, value, option.Description)
	case types.Int:
		intValue, _ := strconv.Atoi(option.Value)
		cmd.Flags().IntP(option.Name, option.Short, intValue, option.Description)
	}

	if option.Required {
		cmd.MarkFlagRequired(option.Name)
	}
}

func getOpts(cmd *cobra.Command, required []*types.Option, common []*types.Option) []*types.Option {
	opts := getGlobalOpts(cmd)

	opts = append(opts, getOptsFromCmd(cmd, required)...)
	if err := types.ValidateOptions(opts, required); err != nil {
		message.Critical("%v", err)
		os.Exit(1)
	}

	opts = append(opts, getOptsFromCmd(cmd, common)...)
	if err := types.ValidateOptions(opts, common); err != nil {
		message.Critical("%v", err)
		os.Exit(1)
	}

	return opts
}

func getGlobalOpts(cmd *cobra.Command) []*types.Option {
	opts := []*types.Option{}

	output := o.OutputOpt
	output.Value, _ = cmd.Flags().GetString(output.Name)
	opts = append(opts, &output)

	filename := o.FileNameOpt
	filename.Value, _ = cmd.Flags().GetString(filename.Name)
	opts = append(opts, &filename)

	jqFilter := o.JqFilterOpt
	jqFilter.Value, _ = cmd.Flags().GetString(jqFilter.Name)
	opts = append(opts, &jqFilter)

	return opts
}

func getOptsFromCmd(cmd *cobra.Command, declared []*types.Option) []*types.Option {
	opts := []*types.Option{}
	for _, opt := range declared {
		switch opt.Type {
		case types.String:
			opt.Value, _ = cmd.Flags().GetString(opt.Name)
		case types.Bool:
			value, _ := cmd.Flags().GetBool(opt.Name)
			opt.Value = strconv.FormatBool(value)
		case types.Int:
			value, _ := cmd.Flags().GetInt(opt.Name)
			opt.Value = strconv.Itoa(value)
		}
		opts = append(opts, opt)
	}
	return opts
}

func runModule(module modules.Module, meta modules.Metadata, options []*types.Option, run modules.Run) {
	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for result := range run.Data {
			for _, outputProvider := range module.GetOutputProviders() {
				wg.Add(1)
				go func(outputProvider types.OutputProvider, result types.Result) {
					if err := outputProvider.Write(result); err != nil {
						message.Error("%v", err)
					}
					wg.Done()
				}(outputProvider, result)
			}
		}
	}()

	message.Banner()
	message.Section(meta.Name)
	if err := module.Invoke(); err != nil {
		message.Error("%v", err)
	}
	wg.Wait()
}
