package journal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path    string
		want    SourceKind
		wantErr bool
	}{
		{path: "Journal.json", want: SourceDayOne},
		{path: "Journal.JSON", want: SourceDayOne},
		{path: "notes.md", want: SourceMarkdown},
		{path: "notes.markdown", want: SourceMarkdown},
		{path: "notes.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_DayOneScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Journal.json",
		`[{"creationDate":"2023-01-02T00:00:00Z","text":"# Trip\nHello"},`+
			`{"creationDate":"2023-01-01T00:00:00Z","text":"Plain note"}]`)

	coll, err := Load(path)
	require.NoError(t, err)

	require.Len(t, coll.Entries, 2)
	assert.Equal(t, SourceDayOne, coll.Source)
	assert.Equal(t, "2023-01-01", coll.Entries[0].Day())
	assert.Equal(t, "Plain note", coll.Entries[0].Body)
	assert.Equal(t, "2023-01-02", coll.Entries[1].Day())
	assert.Equal(t, "# Trip\nHello", coll.Entries[1].Body)
	assert.Empty(t, coll.Warnings)
}

func TestLoad_DayOneExportObject(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Journal.json", `{
  "metadata": {"version": "1.0"},
  "entries": [
    {"uuid": "B", "creationDate": "2024-03-05T10:00:00Z", "text": "second"},
    {"uuid": "A", "creationDate": "2024-03-04T10:00:00Z", "text": "first"},
    {"uuid": "C", "creationDate": "2024-03-06T10:00:00Z", "text": "third **bold**"}
  ]
}`)

	coll, err := Load(path)
	require.NoError(t, err)

	require.Len(t, coll.Entries, 3)
	assert.Equal(t, []string{"A", "B", "C"},
		[]string{coll.Entries[0].UUID, coll.Entries[1].UUID, coll.Entries[2].UUID})
	assert.Equal(t, "third **bold**", coll.Entries[2].Body, "markup kept verbatim")
	assert.Equal(t, "2024-03-04 to 2024-03-06", coll.DateRange())
}

func TestLoad_SortIsStableForEqualDates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "same.json", `{"entries": [
    {"creationDate": "2024-01-01T00:00:00Z", "text": "one"},
    {"creationDate": "2023-12-31T00:00:00Z", "text": "zero"},
    {"creationDate": "2024-01-01T00:00:00Z", "text": "two"},
    {"creationDate": "2024-01-01T00:00:00Z", "text": "three"}
  ]}`)

	coll, err := Load(path)
	require.NoError(t, err)

	bodies := make([]string, 0, coll.Len())
	for _, e := range coll.Entries {
		bodies = append(bodies, e.Body)
	}
	assert.Equal(t, []string{"zero", "one", "two", "three"}, bodies)
}

func TestLoad_SkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "partial.json", `{"entries": [
    {"creationDate": "2024-01-02T00:00:00Z", "text": "kept"},
    {"creationDate": "2024-01-03T00:00:00Z"},
    {"text": "no date"},
    {"creationDate": "yesterday", "text": "bad date"},
    42,
    {"creationDate": "2024-01-01T00:00:00Z", "text": ""}
  ]}`)

	coll, err := Load(path)
	require.NoError(t, err)

	require.Len(t, coll.Entries, 2, "only well-formed records survive")
	assert.Empty(t, coll.Entries[0].Body, "empty text is still a record")
	assert.Equal(t, "kept", coll.Entries[1].Body)
	assert.Len(t, coll.Warnings, 4)
	assert.Contains(t, coll.Warnings[0], "missing \"text\"")
	assert.Contains(t, coll.Warnings[1], "missing \"creationDate\"")
	assert.Contains(t, coll.Warnings[2], "bad creationDate")
}

func TestLoad_AppliesEntryTimeZone(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tz.json", `{"entries": [
    {"creationDate": "2024-01-01T03:00:00Z", "timeZone": "America/New_York", "text": "late night"},
    {"creationDate": "2024-01-01T05:00:00Z", "timeZone": "Not/AZone", "text": "unknown zone"}
  ]}`)

	coll, err := Load(path)
	require.NoError(t, err)

	require.Len(t, coll.Entries, 2)
	if coll.Entries[0].Date.Location().String() == "America/New_York" {
		assert.Equal(t, "2023-12-31", coll.Entries[0].Day())
	}
	assert.Equal(t, "2024-01-01", coll.Entries[1].Day())
	assert.True(t, coll.Entries[0].Date.Equal(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)))
}

func TestLoad_MalformedJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{nope"},
		{name: "empty", content: "   "},
		{name: "no entries key", content: `{"metadata": {}}`},
		{name: "entries not an array", content: `{"entries": {"a": 1}}`},
		{name: "truncated array", content: `[{"text": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.json", tt.content)

			_, err := Load(path)

			var malformed *MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, path, malformed.Path)
			assert.Contains(t, err.Error(), "malformed input")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_Unsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "hello")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestLoad_Markdown(t *testing.T) {
	dir := t.TempDir()
	content := "# Heading\n\nSome *text*.\n\n"
	path := writeFile(t, dir, "notes.md", content)
	mtime := time.Date(2022, 7, 14, 9, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	coll, err := Load(path)
	require.NoError(t, err)

	require.Len(t, coll.Entries, 1)
	assert.Equal(t, SourceMarkdown, coll.Source)
	assert.Equal(t, content, coll.Entries[0].Body, "body is not trimmed")
	assert.True(t, coll.Entries[0].Date.Equal(mtime), "date is the file modification time")
}

func TestLoad_MarkdownFrontMatter(t *testing.T) {
	dir := t.TempDir()
	content := "---\ntitle: Summer Notes\nauthor: M. J. B.\nlang: fa\n---\n# Day one\n"
	path := writeFile(t, dir, "summer.md", content)

	coll, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Metadata{Title: "Summer Notes", Author: "M. J. B.", Language: "fa"}, coll.Meta)
	assert.Equal(t, content, coll.Entries[0].Body, "front matter stays in the body")
}

func TestLoad_MarkdownBadFrontMatterWarns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.md", "---\ntitle: [unclosed\n---\nbody\n")

	coll, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, coll.Warnings, 1)
	assert.Empty(t, coll.Meta.Title)
}
