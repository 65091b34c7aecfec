package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emotibot/moodrelay/internal/cli"
	"github.com/emotibot/moodrelay/internal/client"
	"github.com/emotibot/moodrelay/internal/mood"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Follow mood updates live",
	Long: `Subscribe to the server's event stream and print each mood as it
changes. The current mood is printed first. Press Ctrl+C to stop.

Examples:
  moodctl stream
  moodctl stream --url http://mood.example:8000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := cli.ResolveBaseURL(baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(url)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = c.Stream(ctx, func(m mood.Mood) {
			if !quiet {
				fmt.Fprintln(os.Stdout, cli.FormatEventLine(m))
			}
		})
		if err != nil {
			return fmt.Errorf("stream failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
}
