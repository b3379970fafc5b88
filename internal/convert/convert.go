// Package convert runs a journal export end to end: it loads the input,
// prepares the output directory and invokes each renderer once in a fixed
// order, recording what happened to every format.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/dayone-export/internal/journal"
	"github.com/gorewood/dayone-export/internal/render"
)

// Options configures a conversion run.
type Options struct {
	// Input is the Day One JSON or Markdown file to convert.
	Input string
	// OutputRoot, when set, holds the output directory instead of the
	// input's own directory.
	OutputRoot string
	// Formats selects a subset of render.Sequence. Empty means all.
	Formats []render.Format

	// Settings come from configuration; front matter is applied on top,
	// then Overrides (command-line flags).
	Settings  render.Settings
	Overrides render.Settings

	// Now supplies the date stamp in file names. Defaults to time.Now.
	Now func() time.Time
	// Renderers builds the renderer set. Defaults to render.Defaults.
	Renderers func(render.Settings, []render.Format) []render.Renderer

	// Warn receives each warning as it occurs.
	Warn func(msg string)
	// Progress receives each result as soon as its renderer returns.
	Progress func(Result)
}

// Result records one renderer invocation.
type Result struct {
	Format   render.Format
	Path     string
	Status   render.Status
	Err      error
	Duration time.Duration
}

// Summary describes a completed run.
type Summary struct {
	Input     string
	OutputDir string
	Source    journal.SourceKind
	Entries   int
	Warnings  []string
	Results   []Result
}

// Written returns the number of files written.
func (s *Summary) Written() int { return s.count(render.Written) }

// Skipped returns the number of formats skipped for a missing backend.
func (s *Summary) Skipped() int { return s.count(render.Skipped) }

// Failed returns the number of renderers that failed.
func (s *Summary) Failed() int { return s.count(render.Failed) }

// HasFailures reports whether any renderer failed.
func (s *Summary) HasFailures() bool { return s.Failed() > 0 }

func (s *Summary) count(status render.Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// OutputDir returns the directory outputs for input are written to: the
// input path without its extension, or root joined with that base name.
func OutputDir(input, root string) string {
	trimmed := strings.TrimSuffix(input, filepath.Ext(input))
	if root == "" {
		return trimmed
	}
	return filepath.Join(root, filepath.Base(trimmed))
}

// Run converts opts.Input into every selected format. Input errors abort
// before any output is produced. Once rendering starts, a failed or skipped
// renderer never stops the remaining ones; their errors are reported in
// the Summary, not returned.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	coll, err := journal.Load(opts.Input)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Input:   opts.Input,
		Source:  coll.Source,
		Entries: coll.Len(),
	}
	warn := func(msg string) {
		summary.Warnings = append(summary.Warnings, msg)
		if opts.Warn != nil {
			opts.Warn(msg)
		}
	}
	for _, w := range coll.Warnings {
		warn(w)
	}
	if coll.Len() == 0 {
		return summary, fmt.Errorf("%s: %w", opts.Input, journal.ErrNoEntries)
	}

	settings := opts.Settings.Merge(render.FromMetadata(coll.Meta)).Merge(opts.Overrides)
	settings.Warnf = func(format string, args ...any) { warn(fmt.Sprintf(format, args...)) }

	formats := opts.Formats
	if len(formats) == 0 {
		formats = render.Sequence
	}
	build := opts.Renderers
	if build == nil {
		build = render.Defaults
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	summary.OutputDir = OutputDir(opts.Input, opts.OutputRoot)
	if err := os.MkdirAll(summary.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating output directory: %w", err)
	}

	day := now()
	for _, r := range build(settings, formats) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		job := render.NewJob(summary.OutputDir, opts.Input, day, r.Format())
		start := time.Now()
		err := safeRender(ctx, r, coll, job.Path)
		result := Result{
			Format:   job.Format,
			Path:     job.Path,
			Status:   render.Classify(err),
			Err:      err,
			Duration: time.Since(start),
		}
		summary.Results = append(summary.Results, result)
		if opts.Progress != nil {
			opts.Progress(result)
		}
	}
	return summary, nil
}

// safeRender turns a renderer panic into an error.
func safeRender(ctx context.Context, r render.Renderer, coll *journal.Collection, path string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s renderer panicked: %v", r.Format(), p)
		}
	}()
	return r.Render(ctx, coll, path)
}
