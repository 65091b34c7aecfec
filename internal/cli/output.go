package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/emotibot/moodrelay/internal/mood"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatPlain OutputFormat = "plain"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTable OutputFormat = "table"
)

// PrintMood outputs a mood snapshot in the specified format
func PrintMood(m mood.Mood, format OutputFormat) error {
	return FprintMood(os.Stdout, m, format)
}

// FprintMood outputs a mood snapshot to the given writer
func FprintMood(w io.Writer, m mood.Mood, format OutputFormat) error {
	switch format {
	case FormatPlain:
		_, err := fmt.Fprintln(w, m.Value)
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]mood.Mood{"mood": m})
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(m)
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.Header("Mood", "Observed At")
		table.Append(m.Value, m.Time().Format("2006-01-02 15:04:05"))
		return table.Render()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatEventLine renders one streamed mood event the way the stream command
// prints it: "HH:MM:SS > mood", or the bare value when no timestamp is set.
func FormatEventLine(m mood.Mood) string {
	if m.Timestamp == 0 {
		return m.Value
	}
	return fmt.Sprintf("%s > %s", m.Time().Format("15:04:05"), m.Value)
}
