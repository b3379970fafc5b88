package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gorewood/dayone-export/internal/render"
)

// EnvPrefix prefixes every environment variable, e.g. DAYONE_EXPORT_TITLE
// or DAYONE_EXPORT_PDF_TIMEOUT.
const EnvPrefix = "DAYONE_EXPORT"

// Default values.
const (
	DefaultLanguage    = "en"
	DefaultPDFTimeout  = render.DefaultTimeout
	DefaultPersianFont = render.DefaultPersianFont
)

type (
	// Config holds settings from the config file and environment.
	Config struct {
		Title     string
		Author    string
		Language  string
		Cover     string
		OutputDir string
		Formats   []string
		PDF
		LaTeX

		// File is the config file that was read, empty when none was found.
		File string
	}

	PDF struct {
		Converter string        // DOCX to PDF program name or path; empty to autodetect
		Timeout   time.Duration // upper bound for one conversion
	}

	LaTeX struct {
		PersianFont string // XePersian text font
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "")
	v.SetDefault("author", "")
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("cover", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("formats", []string{})
	v.SetDefault("pdf.converter", "")
	v.SetDefault("pdf.timeout", DefaultPDFTimeout.String())
	v.SetDefault("latex.persian_font", DefaultPersianFont)
}

// Load reads the configuration. A non-empty file names the config file
// explicitly and must exist; otherwise dayone-export.yaml is looked up in
// the working directory and then Dir(), and a missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		Title:     v.GetString("title"),
		Author:    v.GetString("author"),
		Language:  v.GetString("language"),
		Cover:     v.GetString("cover"),
		OutputDir: v.GetString("output_dir"),
		Formats:   v.GetStringSlice("formats"),
		PDF: PDF{
			Converter: v.GetString("pdf.converter"),
			Timeout:   v.GetDuration("pdf.timeout"),
		},
		LaTeX: LaTeX{
			PersianFont: v.GetString("latex.persian_font"),
		},
		File: v.ConfigFileUsed(),
	}

	if cfg.PDF.Timeout <= 0 {
		return nil, fmt.Errorf("pdf.timeout must be a positive duration, got %q", v.GetString("pdf.timeout"))
	}
	return cfg, nil
}
