package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emotibot/moodrelay/internal/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage the moodctl configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long: `Create a default configuration file at ~/.moodctl/config.yaml

Example:
  moodctl config init`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.InitConfig(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		configPath, _ := cli.GetConfigPath()
		fmt.Printf("Configuration file created at: %s\n", configPath)

		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current configuration",
	Long: `Display the effective configuration.

Example:
  moodctl config list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		effective, err := cli.ResolveBaseURL(baseURL)
		if err != nil {
			return err
		}

		fmt.Printf("base_url: %s\n", cfg.BaseURL)
		fmt.Printf("effective base URL: %s\n", effective)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Example:
  moodctl config set base_url http://mood.example:8000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch key {
		case "base_url":
			cfg.BaseURL = value
		default:
			return fmt.Errorf("unknown key '%s', valid keys: base_url", key)
		}

		if err := cli.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Successfully set %s\n", key)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSetCmd)
}
