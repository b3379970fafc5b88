package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gorewood/dayone-export/internal/journal"
)

const binDocx2PDF = "docx2pdf"

var officeBinaries = []string{"soffice", "libreoffice"}

// Status classifies the result of one renderer invocation.
type Status int

const (
	Written Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is the classified result of a render attempt.
type Outcome struct {
	Status Status
	Err    error
}

// Classify maps a renderer error to a Status. Errors wrapping
// ErrUnavailable are skips.
func Classify(err error) Status {
	switch {
	case err == nil:
		return Written
	case errors.Is(err, ErrUnavailable):
		return Skipped
	default:
		return Failed
	}
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var defaultExec executor = &osExecutor{}

// Converter is a host program that turns DOCX into PDF.
type Converter struct {
	Name string
	Path string
}

// docx2pdf takes explicit input and output paths; office suites write
// <name>.pdf into an output directory.
func (c Converter) isDocx2PDF() bool {
	return strings.HasPrefix(strings.ToLower(c.Name), binDocx2PDF)
}

func (c Converter) args(docxPath, outDir, pdfPath string) []string {
	if c.isDocx2PDF() {
		return []string{docxPath, pdfPath}
	}
	return []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath}
}

// DetectConverter finds a DOCX to PDF converter on the host. A non-empty
// preferred name or path is the only candidate tried. The returned error
// wraps ErrUnavailable when nothing is found.
func DetectConverter(preferred string) (Converter, error) {
	return detectConverter(defaultExec, preferred, runtime.GOOS)
}

func detectConverter(exec executor, preferred, goos string) (Converter, error) {
	var candidates []string
	switch {
	case preferred != "":
		candidates = []string{preferred}
	case goos == "windows":
		candidates = append([]string{binDocx2PDF}, officeBinaries...)
	default:
		candidates = officeBinaries
	}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return Converter{Name: filepath.Base(candidate), Path: path}, nil
		}
	}
	return Converter{}, fmt.Errorf("%w: no PDF converter found (tried %s)",
		ErrUnavailable, strings.Join(candidates, ", "))
}

// PDFRenderer builds the Word document in a scratch directory and converts
// it with a host converter.
type PDFRenderer struct {
	settings Settings
	exec     executor
	goos     string
}

// NewPDFRenderer creates a PDFRenderer using the host's converters.
func NewPDFRenderer(s Settings) *PDFRenderer {
	return &PDFRenderer{settings: s, exec: defaultExec, goos: runtime.GOOS}
}

// Format implements Renderer.
func (r *PDFRenderer) Format() Format { return PDF }

// TryRender renders and classifies the result. A missing converter is
// Skipped, not Failed.
func (r *PDFRenderer) TryRender(ctx context.Context, coll *journal.Collection, path string) Outcome {
	err := r.Render(ctx, coll, path)
	return Outcome{Status: Classify(err), Err: err}
}

// Render implements Renderer.
func (r *PDFRenderer) Render(ctx context.Context, coll *journal.Collection, path string) error {
	conv, err := detectConverter(r.exec, r.settings.Converter, r.goos)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "dayone-export-pdf-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	base := strings.TrimSuffix(filepath.Base(path), PDF.Ext())
	docxPath := filepath.Join(scratch, base+Word.Ext())
	if err := WriteWord(coll, r.settings, docxPath); err != nil {
		return err
	}

	timeout := r.settings.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	produced := filepath.Join(scratch, base+PDF.Ext())
	out, err := r.exec.Run(ctx, conv.Path, conv.args(docxPath, scratch, produced)...)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s", conv.Name, timeout)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", conv.Name, err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(produced)
	if err != nil {
		return fmt.Errorf("%s produced no PDF: %w", conv.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
