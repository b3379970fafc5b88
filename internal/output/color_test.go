package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  bool
	}{
		{mode: ColorNever, isTTY: true, want: false},
		{mode: ColorNever, isTTY: false, want: false},
		{mode: ColorAlways, isTTY: true, want: true},
		{mode: ColorAlways, isTTY: false, want: true},
		{mode: ColorAuto, isTTY: true, want: true},
		{mode: ColorAuto, isTTY: false, want: false},
		{mode: "", isTTY: true, want: true},
		{mode: "sometimes", isTTY: false, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveColorMode(tt.mode, tt.isTTY), "mode=%q tty=%v", tt.mode, tt.isTTY)
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestNeverColorUsesPlainStyles(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ResolveColorMode(ColorNever, true))

	assert.False(t, printer.IsTTY())
	assert.Equal(t, lipgloss.NewStyle().GetForeground(), printer.styles.Error.GetForeground())

	printer.Error(NewUserError("no entries"))
	printer.Failed("pdf", "converter exited 1")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestAlwaysColorKeepsStyles(t *testing.T) {
	printer := NewPrinter(&bytes.Buffer{}, false, ResolveColorMode(ColorAlways, false))

	assert.True(t, printer.IsTTY())
	assert.NotEqual(t, lipgloss.NewStyle().GetForeground(), printer.styles.Error.GetForeground())
	assert.True(t, strings.Contains(printer.styles.Success.Render("x"), "x"))
}
