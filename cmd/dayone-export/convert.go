package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/dayone-export/internal/config"
	"github.com/gorewood/dayone-export/internal/convert"
	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/output"
	"github.com/gorewood/dayone-export/internal/render"
)

// convertFlags holds the command-line flags for a conversion.
type convertFlags struct {
	out     string
	formats []string
	cover   string
	title   string
	author  string
	strict  bool
}

// resultJSON is one renderer outcome in --json output.
type resultJSON struct {
	Format     string `json:"format"`
	Path       string `json:"path"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// summaryJSON is the --json result of a conversion.
type summaryJSON struct {
	Input     string       `json:"input"`
	OutputDir string       `json:"output_dir"`
	Source    string       `json:"source"`
	Entries   int          `json:"entries"`
	Warnings  []string     `json:"warnings"`
	Results   []resultJSON `json:"results"`
	Written   int          `json:"written"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
}

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a journal into every output format",
		Long: `Convert a Day One JSON export or a Markdown file.

Outputs are written in a fixed order (html, md, txt, tex, docx, pdf, epub)
to a folder named after the input, or under --out. A format whose backend
is missing is skipped; a format that fails does not stop the others.

Examples:
  dayone-export convert Journal.json
  dayone-export convert Journal.json --formats html,epub
  dayone-export convert notes.md --title "Summer 2023" --author "Ann"
  dayone-export convert Journal.json --out ./exports --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args[0])
		},
	}

	bindConvertFlags(cmd, flags)
	return cmd
}

// bindConvertFlags registers the conversion flags on cmd.
func bindConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Directory that receives the output folder (default: next to the input)")
	cmd.Flags().StringSliceVarP(&flags.formats, "formats", "f", nil, "Comma-separated formats to write (default: all)")
	cmd.Flags().StringVar(&flags.cover, "cover", "", "EPUB cover image (default: cover.jpg next to the input)")
	cmd.Flags().StringVar(&flags.title, "title", "", "Document title")
	cmd.Flags().StringVar(&flags.author, "author", "", "Document author")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with status 2 when any format fails")
}

// runConvert executes a conversion of input.
func runConvert(cmd *cobra.Command, flags *convertFlags, input string) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd, printer)
	if err != nil {
		return err
	}

	formats, err := selectFormats(flags.formats, cfg.Formats)
	if err != nil {
		userErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(userErr)
		return userErr
	}

	opts := convert.Options{
		Input:      input,
		OutputRoot: firstNonEmpty(flags.out, cfg.OutputDir),
		Formats:    formats,
		Settings:   settingsFromConfig(cfg),
		Overrides:  render.Settings{Title: flags.title, Author: flags.author, Cover: flags.cover},
		Warn:       func(msg string) { printer.Warn("%s", msg) },
		Progress:   func(r convert.Result) { reportResult(printer, r) },
	}

	summary, err := convert.Run(cmd.Context(), opts)
	if err != nil {
		exitErr := classifyRunError(err)
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(toSummaryJSON(summary)); err != nil {
			return err
		}
	} else {
		printer.Print("%d written, %d skipped, %d failed %s\n",
			summary.Written(), summary.Skipped(), summary.Failed(),
			printer.Muted("("+summary.OutputDir+")"))
	}

	if flags.strict && summary.HasFailures() {
		err := output.NewSystemError(fmt.Sprintf("%d of %d formats failed", summary.Failed(), len(summary.Results)))
		if !printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}
	return nil
}

// selectFormats resolves --formats, falling back to the configured list.
func selectFormats(flagFormats, configured []string) ([]render.Format, error) {
	if len(flagFormats) > 0 {
		return render.ParseFormats(flagFormats)
	}
	return render.ParseFormats(configured)
}

// settingsFromConfig maps configuration onto renderer settings.
func settingsFromConfig(cfg *config.Config) render.Settings {
	return render.Settings{
		Title:       cfg.Title,
		Author:      cfg.Author,
		Language:    cfg.Language,
		Cover:       cfg.Cover,
		PersianFont: cfg.LaTeX.PersianFont,
		Converter:   cfg.PDF.Converter,
		Timeout:     cfg.PDF.Timeout,
	}
}

// reportResult prints one renderer outcome as it completes.
func reportResult(printer *output.Printer, r convert.Result) {
	label := string(r.Format)
	switch r.Status {
	case render.Written:
		printer.Wrote(label, r.Path)
	case render.Skipped:
		printer.Skipped(label, errorText(r.Err))
	default:
		printer.Failed(label, errorText(r.Err))
	}
}

// classifyRunError maps a conversion error to an exit code. Problems with
// the input are user errors; everything else is a system error.
func classifyRunError(err error) *output.ExitError {
	var malformed *journal.MalformedInputError
	switch {
	case errors.Is(err, journal.ErrUnsupportedSource),
		errors.Is(err, journal.ErrNoEntries),
		errors.Is(err, fs.ErrNotExist),
		errors.As(err, &malformed):
		return output.NewUserErrorWithCause(err.Error(), err)
	case errors.Is(err, context.Canceled):
		return output.NewUserErrorWithCause("interrupted", err)
	default:
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
}

func toSummaryJSON(s *convert.Summary) summaryJSON {
	out := summaryJSON{
		Input:     s.Input,
		OutputDir: s.OutputDir,
		Source:    string(s.Source),
		Entries:   s.Entries,
		Warnings:  s.Warnings,
		Results:   make([]resultJSON, 0, len(s.Results)),
		Written:   s.Written(),
		Skipped:   s.Skipped(),
		Failed:    s.Failed(),
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	for _, r := range s.Results {
		out.Results = append(out.Results, resultJSON{
			Format:     string(r.Format),
			Path:       r.Path,
			Status:     r.Status.String(),
			Error:      errorText(r.Err),
			DurationMS: r.Duration.Milliseconds(),
		})
	}
	return out
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
