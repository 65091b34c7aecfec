package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	format  string
	quiet   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moodctl",
	Short: "CLI tool for the moodrelay service",
	Long: `Moodctl is a command-line tool for reading, updating and following the
mood published by a moodrelay server.

Examples:
  moodctl get
  moodctl set happy
  moodctl stream
  moodctl get --format json --url http://mood.example:8000`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Base URL of the moodrelay API")
	rootCmd.PersistentFlags().StringVar(&format, "format", "plain", "Output format (plain, json, yaml, table)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
}
