package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontMatter(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantMeta    string
		wantContent string
		wantOK      bool
	}{
		{name: "block", doc: "---\ntitle: A\n---\n# Body\n", wantMeta: "title: A\n", wantContent: "# Body\n", wantOK: true},
		{name: "crlf", doc: "---\r\ntitle: A\r\n---\r\nbody", wantMeta: "title: A\r\n", wantContent: "body", wantOK: true},
		{name: "closing at end", doc: "---\ntitle: A\n---", wantMeta: "title: A\n", wantContent: "", wantOK: true},
		{name: "empty block", doc: "---\n---\nbody", wantMeta: "", wantContent: "body", wantOK: true},
		{name: "longer rule is not a delimiter", doc: "---\ntitle: A\n-----\nbody", wantContent: "---\ntitle: A\n-----\nbody"},
		{name: "unclosed", doc: "---\ntitle: A\n", wantContent: "---\ntitle: A\n"},
		{name: "not at start", doc: "\n---\ntitle: A\n---\n", wantContent: "\n---\ntitle: A\n---\n"},
		{name: "none", doc: "# Title", wantContent: "# Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, content, ok := FrontMatter(tt.doc)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, tt.wantContent, content)
		})
	}
}

func TestContent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "mapping is dropped", body: "---\ntitle: A\nauthor: B\n---\ntext", want: "text"},
		{name: "rule and setext heading kept", body: "---\nJust a line\n---\ntext", want: "---\nJust a line\n---\ntext"},
		{name: "invalid yaml kept", body: "---\ntitle: [x\n---\ntext", want: "---\ntitle: [x\n---\ntext"},
		{name: "empty block kept", body: "---\n---\ntext", want: "---\n---\ntext"},
		{name: "no block", body: "text", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Content(tt.body))
		})
	}
}

func TestFrontMatterIsNotRendered(t *testing.T) {
	body := "---\ntitle: Summer\n---\n# Lake\nswim"

	html, err := HTML(body)
	require.NoError(t, err)
	assert.NotContains(t, html, "Summer")
	assert.Contains(t, html, "<h1>Lake</h1>")

	blocks := Parse(body)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Lake", blocks[0].Text())
	assert.Equal(t, "swim", blocks[1].Text())
}
