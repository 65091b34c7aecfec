package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emotibot/moodrelay/internal/cli"
	"github.com/emotibot/moodrelay/internal/client"
)

var setCmd = &cobra.Command{
	Use:   "set <mood>",
	Short: "Set the current mood",
	Long: `Update the mood the server relays to all subscribers.

Examples:
  moodctl set happy
  moodctl set "cautiously optimistic"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := args[0]

		url, err := cli.ResolveBaseURL(baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(url)

		m, err := c.SetMood(context.Background(), value)
		if err != nil {
			return fmt.Errorf("failed to set mood: %w", err)
		}

		if !quiet {
			fmt.Printf("Mood set to: %s\n", m.Value)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
