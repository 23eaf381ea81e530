package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTableAlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "TITLE"},
		[][]string{
			{StyleRed.Render("abc"), "Essay"},
			{"a", "Lab report"},
		},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "TITLE"), strings.Index(lines[2], "Essay"))
	assert.Equal(t, strings.Index(lines[0], "TITLE"), strings.Index(lines[3], "Lab report"))
}

func TestRenderTableNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
