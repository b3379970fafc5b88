package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/dayone-export/internal/render"
)

// formatJSON describes one output format in --json output.
type formatJSON struct {
	Format    string `json:"format"`
	Extension string `json:"extension"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Backend   string `json:"backend,omitempty"`
}

// newFormatsCmd creates the formats command.
func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats in the order they are written",
		Long: `List the output formats, their file extensions and whether they can be
produced on this machine. Format names are accepted by --formats.

Examples:
  dayone-export formats
  dayone-export formats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormats(cmd)
		},
	}
}

// runFormats executes the formats command.
func runFormats(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd, printer)
	if err != nil {
		return err
	}

	items := make([]formatJSON, 0, len(render.Sequence))
	for _, f := range render.Sequence {
		item := formatJSON{
			Format:    string(f),
			Extension: f.Ext(),
			Name:      f.Name(),
			Available: true,
			Backend:   "built in",
		}
		if f == render.PDF {
			conv, err := render.DetectConverter(cfg.PDF.Converter)
			item.Available = err == nil
			item.Backend = conv.Path
			if err != nil {
				item.Backend = ""
			}
		}
		items = append(items, item)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"formats": items})
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		backend := item.Backend
		if !item.Available {
			backend = "unavailable"
		}
		rows = append(rows, []string{item.Format, item.Extension, item.Name, backend})
	}
	printer.Table([]string{"FORMAT", "EXT", "NAME", "BACKEND"}, rows)
	return nil
}
