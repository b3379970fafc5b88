package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/render"
)

// previewWidth caps the first-line column in the entries table.
const previewWidth = 60

// entryJSON is one entry in --json output.
type entryJSON struct {
	Date      string   `json:"date"`
	UUID      string   `json:"uuid,omitempty"`
	Chapters  []string `json:"chapters"`
	FirstLine string   `json:"first_line"`
}

// newEntriesCmd creates the entries command.
func newEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries <input>",
		Short: "List the entries a conversion would include",
		Long: `List the normalized entries of a Day One JSON export or Markdown file.

Entries are shown in date order with the chapters they contribute to the
EPUB and the first line of their text. Records that would be skipped are
reported as warnings.

Examples:
  dayone-export entries Journal.json
  dayone-export entries Journal.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntries(cmd, args[0])
		},
	}
}

// runEntries executes the entries command.
func runEntries(cmd *cobra.Command, input string) error {
	printer := newPrinter(cmd)

	coll, err := journal.Load(input)
	if err != nil {
		exitErr := classifyRunError(err)
		printer.Error(exitErr)
		return exitErr
	}
	for _, w := range coll.Warnings {
		printer.Warn("%s", w)
	}

	items := make([]entryJSON, 0, coll.Len())
	for _, entry := range coll.Entries {
		items = append(items, describeEntry(entry))
	}

	if printer.IsJSON() {
		warnings := coll.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		return printer.WriteJSON(map[string]any{
			"input":    input,
			"source":   string(coll.Source),
			"count":    coll.Len(),
			"entries":  items,
			"warnings": warnings,
		})
	}

	if coll.Len() == 0 {
		printer.Println("No entries found")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Date, strconv.Itoa(len(item.Chapters)), item.FirstLine})
	}
	printer.Table([]string{"DATE", "CHAPTERS", "FIRST LINE"}, rows)
	printer.Println()
	printer.Print("%d entries, %s %s\n", coll.Len(), coll.DateRange(), printer.Muted("("+string(coll.Source)+")"))
	return nil
}

// describeEntry summarizes entry for listing.
func describeEntry(entry journal.Entry) entryJSON {
	chapters := journal.SplitChapters(entry)
	titles := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		titles = append(titles, ch.Title)
	}
	return entryJSON{
		Date:      entry.Day(),
		UUID:      entry.UUID,
		Chapters:  titles,
		FirstLine: firstLine(render.StripMarkdown(entry.Body)),
	}
}

// firstLine returns the first non-blank line of text, shortened to
// previewWidth runes.
func firstLine(text string) string {
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > previewWidth {
			return string(runes[:previewWidth-1]) + "…"
		}
		return line
	}
	return ""
}

