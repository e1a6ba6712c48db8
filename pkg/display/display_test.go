// Test Type: Unit Test
// Description: Tests for styles and table previews

package display_test

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tabexport/pkg/display"
	"github.com/arthur-debert/tabexport/pkg/sink/text"
)

func TestGetStyle(t *testing.T) {
	assert.True(t, display.GetStyle("Error").GetBold())
	assert.True(t, display.GetStyle("Muted").GetItalic())
	assert.False(t, display.GetStyle("Unknown").GetBold())
}

func TestLoadStyles(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, display.LoadDefaultStyles()) })

	require.NoError(t, display.LoadStyles([]byte("styles:\n  Custom:\n    bold: true\n")))
	assert.True(t, display.GetStyle("Custom").GetBold())
	assert.False(t, display.GetStyle("Error").GetBold())

	assert.Error(t, display.LoadStyles([]byte("styles: [")))
}

func TestTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	g := text.NewGrid()
	g.Set(0, 0, "Id")
	g.Set(0, 1, "Name")
	g.Set(1, 0, "1")
	g.Set(1, 1, "Ada")
	g.Set(2, 0, "2")

	var buf bytes.Buffer
	require.NoError(t, display.Table(&buf, g, true))
	out := buf.String()
	assert.Contains(t, out, "Id")
	assert.Contains(t, out, "Ada")

	buf.Reset()
	require.NoError(t, display.Table(&buf, text.NewGrid(), true))
	assert.Empty(t, buf.String())
}
