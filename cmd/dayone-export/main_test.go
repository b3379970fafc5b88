package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/dayone-export/internal/output"
)

const scenarioJSON = `{"entries": [` +
	`{"creationDate": "2023-01-02T00:00:00Z", "text": "# Trip\nHello"},` +
	`{"creationDate": "2023-01-01T00:00:00Z", "text": "Plain note"}]}`

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// isolate runs the test in an empty working directory with no config file
// and no PDF converter.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("DAYONE_EXPORT_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"TITLE", "AUTHOR", "LANGUAGE", "COVER", "OUTPUT_DIR", "FORMATS", "PDF_TIMEOUT", "LATEX_PERSIAN_FONT"} {
		t.Setenv("DAYONE_EXPORT_"+key, "")
		require.NoError(t, os.Unsetenv("DAYONE_EXPORT_"+key))
	}
	t.Setenv("DAYONE_EXPORT_PDF_CONVERTER", "no-such-pdf-converter-for-tests")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	out, _, err := execute(t, "--version")
	require.NoError(t, err)

	assert.Contains(t, out, "dayone-export")
	assert.Contains(t, out, "1.2.3")
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, want := range []string{"Usage:", "convert", "entries", "formats", "doctor", "--json", "--color", "--config"} {
		assert.Contains(t, out, want)
	}
}

func TestRootCommand_JSONWithoutInput(t *testing.T) {
	out, _, err := execute(t, "--json")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Contains(t, result["error"], "no input specified")
	assert.InDelta(t, float64(output.ExitUserError), result["code"], 0)
}

func TestRootCommand_ConvertsArgument(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "Journal.json", scenarioJSON)

	out, _, err := execute(t, input, "--formats", "txt")
	require.NoError(t, err)

	assert.Contains(t, out, "1 written, 0 skipped, 0 failed")
	matches, err := filepath.Glob(filepath.Join(dir, "Journal", "output_Journal.json_*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRootCommand_RejectsExtraArguments(t *testing.T) {
	_, _, err := execute(t, "a.json", "b.json")
	assert.Error(t, err)
}

func TestBuildVersion(t *testing.T) {
	t.Cleanup(func() { version, commit, date = "dev", "none", "unknown" })

	version, commit, date = "1.0.0", "none", "unknown"
	assert.Equal(t, "1.0.0", buildVersion())

	commit, date = "0123456789abcdef", "2024-05-01"
	assert.Equal(t, "1.0.0 (0123456, 2024-05-01)", buildVersion())
}

func TestRootCommand_LoadsEnvFile(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "Journal.json", scenarioJSON)
	writeFile(t, dir, ".env", "DAYONE_EXPORT_FORMATS=md\n")
	t.Setenv("DAYONE_EXPORT_FORMATS", "")
	require.NoError(t, os.Unsetenv("DAYONE_EXPORT_FORMATS"))

	out, _, err := execute(t, "convert", input)
	require.NoError(t, err)

	assert.Contains(t, out, "1 written, 0 skipped, 0 failed")
	assert.Contains(t, out, ".md")
}
