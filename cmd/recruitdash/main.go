package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "recruitdash",
	Short: "Recruitment Dashboard - hiring charts from upstream datasets",
	Long: `recruitdash fetches the applications, experience and LinkedIn datasets,
maps them into chart configurations and serves them as a dashboard page,
a JSON API and PNG/XLSX exports.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
