package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/dayone-export/internal/journal"
)

func TestEntries_Table(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "Journal.json", scenarioJSON)

	out, _, err := execute(t, "entries", input)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "DATE        CHAPTERS  FIRST LINE", lines[0])
	assert.Equal(t, "2023-01-01  1         Plain note", lines[1])
	assert.Equal(t, "2023-01-02  1         Trip", lines[2])
	assert.Contains(t, out, "2 entries, 2023-01-01 to 2023-01-02")
}

func TestEntries_JSON(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "Journal.json", `{"entries": [`+
		`{"creationDate": "2023-01-02T00:00:00Z", "text": "# Trip\nHello\n# Home\nBack", "uuid": "B2"},`+
		`{"creationDate": "2023-01-01T00:00:00Z", "text": "Plain note"},`+
		`{"text": "undated"}]}`)

	out, errOut, err := execute(t, "entries", input, "--json")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	var result struct {
		Source   string      `json:"source"`
		Count    int         `json:"count"`
		Entries  []entryJSON `json:"entries"`
		Warnings []string    `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, "dayone", result.Source)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, []string{"Entry 2023-01-01"}, result.Entries[0].Chapters)
	assert.Equal(t, []string{"Trip", "Home"}, result.Entries[1].Chapters)
	assert.Equal(t, "B2", result.Entries[1].UUID)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "creationDate")
}

func TestEntries_WarningsGoToStderr(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "Journal.json", `{"entries": [{"text": "undated"}]}`)

	out, errOut, err := execute(t, "entries", input)
	require.NoError(t, err)

	assert.Equal(t, "No entries found\n", out)
	assert.Contains(t, errOut, "Warning: ")
}

func TestEntries_UnsupportedInput(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "notes.rtf", "x")

	_, errOut, err := execute(t, "entries", input)

	require.Error(t, err)
	assert.ErrorIs(t, err, journal.ErrUnsupportedSource)
	assert.Contains(t, errOut, "Error: ")
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "skips blank lines", in: "\n\n  hello  \nworld", want: "hello"},
		{name: "empty", in: "\n \n", want: ""},
		{name: "truncates", in: strings.Repeat("a", 70), want: strings.Repeat("a", 59) + "…"},
		{name: "counts runes", in: strings.Repeat("س", 60), want: strings.Repeat("س", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstLine(tt.in))
		})
	}
}

func TestDescribeEntry(t *testing.T) {
	coll := &journal.Collection{Entries: []journal.Entry{{Body: "**Bold** start\n\nmore"}}}

	got := describeEntry(coll.Entries[0])

	assert.Equal(t, "0001-01-01", got.Date)
	assert.Equal(t, "Bold start", got.FirstLine)
}
