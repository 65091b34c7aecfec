package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emotibot/moodrelay/internal/cli"
	"github.com/emotibot/moodrelay/internal/client"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the current mood",
	Long: `Get the mood the server is currently relaying.

Examples:
  moodctl get
  moodctl get --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := cli.ResolveBaseURL(baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(url)

		m, err := c.GetMood(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get mood: %w", err)
		}

		if !quiet {
			return cli.PrintMood(m, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
