package main

import (
	"os/exec"

	"github.com/gorewood/dayone-export/internal/config"
	"github.com/gorewood/dayone-export/internal/render"
)

// lookPath resolves external programs; tests replace it.
var lookPath = exec.LookPath

// runConfigChecks loads the configuration and reports on it. The returned
// config falls back to defaults when loading fails.
func runConfigChecks(file string) ([]checkResult, *config.Config) {
	cfg, err := config.Load(file)
	if err != nil {
		return []checkResult{{
			Name:    "Config File",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix or remove the file, or pass --config with a valid YAML file",
		}}, &config.Config{}
	}

	if cfg.File == "" {
		return []checkResult{{
			Name:    "Config File",
			Status:  checkPass,
			Message: "none found, using defaults",
		}}, cfg
	}
	return []checkResult{{
		Name:    "Config File",
		Status:  checkPass,
		Message: cfg.File,
	}}, cfg
}

// runBackendChecks looks for the programs behind PDF and LaTeX output.
func runBackendChecks(cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 3)
	checks = append(checks, checkPDFConverter(cfg.PDF.Converter))
	checks = append(checks, checkTeX("xelatex", "needed to typeset Persian .tex output"))
	checks = append(checks, checkTeX("pdflatex", "needed to typeset .tex output"))
	return checks
}

// checkPDFConverter reports the DOCX to PDF converter that would be used.
func checkPDFConverter(preferred string) checkResult {
	conv, err := render.DetectConverter(preferred)
	if err != nil {
		return checkResult{
			Name:    "PDF Converter",
			Status:  checkWarn,
			Message: err.Error() + "; PDF output will be skipped",
			Hint:    "Install LibreOffice (soffice) or set pdf.converter in dayone-export.yaml",
		}
	}
	return checkResult{
		Name:    "PDF Converter",
		Status:  checkPass,
		Message: conv.Name + " at " + conv.Path,
	}
}

// checkTeX reports whether a TeX engine is on the PATH. The .tex file is
// written either way.
func checkTeX(engine, purpose string) checkResult {
	path, err := lookPath(engine)
	if err != nil {
		return checkResult{
			Name:    engine,
			Status:  checkWarn,
			Message: "not found; " + purpose,
			Hint:    "Install a TeX distribution such as TeX Live",
		}
	}
	return checkResult{
		Name:    engine,
		Status:  checkPass,
		Message: path,
	}
}
