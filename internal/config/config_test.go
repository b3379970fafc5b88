package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/dayone-export/internal/render"
)

// isolate points the config search at empty directories and clears the
// environment variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("DAYONE_EXPORT_CONFIG_HOME", home)
	for _, key := range []string{"TITLE", "AUTHOR", "LANGUAGE", "COVER", "OUTPUT_DIR", "FORMATS", "PDF_CONVERTER", "PDF_TIMEOUT", "LATEX_PERSIAN_FONT"} {
		t.Setenv("DAYONE_EXPORT_"+key, "")
		require.NoError(t, os.Unsetenv("DAYONE_EXPORT_"+key))
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.Title)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Empty(t, cfg.Formats)
	assert.Equal(t, DefaultPDFTimeout, cfg.PDF.Timeout)
	assert.Equal(t, DefaultPersianFont, cfg.LaTeX.PersianFont)
}

func TestLoad_DefaultsMatchRenderers(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, render.DefaultTimeout, cfg.PDF.Timeout)
	assert.Equal(t, render.DefaultPersianFont, cfg.LaTeX.PersianFont)
}

func TestLoad_FileInConfigDir(t *testing.T) {
	home := isolate(t)
	content := `title: Road Notes
author: Ann
cover: art/cover.jpg
output_dir: exports
formats: [html, epub]
pdf:
  converter: /opt/libreoffice/program/soffice
  timeout: 45s
latex:
  persian_font: Vazirmatn
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "dayone-export.yaml"), []byte(content), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "dayone-export.yaml"), cfg.File)
	assert.Equal(t, "Road Notes", cfg.Title)
	assert.Equal(t, "Ann", cfg.Author)
	assert.Equal(t, "art/cover.jpg", cfg.Cover)
	assert.Equal(t, "exports", cfg.OutputDir)
	assert.Equal(t, []string{"html", "epub"}, cfg.Formats)
	assert.Equal(t, "/opt/libreoffice/program/soffice", cfg.PDF.Converter)
	assert.Equal(t, 45*time.Second, cfg.PDF.Timeout)
	assert.Equal(t, "Vazirmatn", cfg.LaTeX.PersianFont)
}

func TestLoad_WorkingDirectoryWins(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "dayone-export.yaml"), []byte("title: Home\n"), 0o600))
	require.NoError(t, os.WriteFile("dayone-export.yaml", []byte("title: Local\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Local", cfg.Title)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "dayone-export.yaml"),
		[]byte("title: From File\npdf:\n  timeout: 1m\n"), 0o600))
	t.Setenv("DAYONE_EXPORT_TITLE", "From Env")
	t.Setenv("DAYONE_EXPORT_PDF_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.Title)
	assert.Equal(t, 5*time.Second, cfg.PDF.Timeout)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author: Explicit\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Explicit", cfg.Author)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "explicit file missing", missing: true},
		{name: "invalid yaml", content: "title: [unclosed\n"},
		{name: "bad timeout", content: "pdf:\n  timeout: soon\n"},
		{name: "negative timeout", content: "pdf:\n  timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
