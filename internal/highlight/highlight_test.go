package highlight

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/code-wave/internal/model"
)

func joined(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func TestBlockPreservesText(t *testing.T) {
	block := model.NewBlock("go", "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}")
	h := New("monokai")

	lines := h.Block(block)

	require.Len(t, lines, block.Len())
	for i, spans := range lines {
		assert.Equal(t, block.Lines[i].Text, joined(spans), "line %d", i)
	}
}

func TestBlockColoursKeywords(t *testing.T) {
	block := model.NewBlock("go", "func main() {}")
	h := New("monokai")

	spans := h.Block(block)[0]

	require.NotEmpty(t, spans)
	assert.Equal(t, "func", spans[0].Text)
	assert.NotEqual(t, tcell.ColorDefault, spans[0].Color)
}

func TestBlockIsCached(t *testing.T) {
	block := model.NewBlock("go", "x := 1")
	h := New("monokai")

	first := h.Block(block)
	second := h.Block(block)

	assert.Same(t, &first[0][0], &second[0][0])
}

func TestNoneDisablesHighlighting(t *testing.T) {
	block := model.NewBlock("go", "func main() {}")

	spans := New("none").Block(block)[0]

	assert.Equal(t, []Span{{Text: "func main() {}", Color: tcell.ColorDefault}}, spans)
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	block := model.NewBlock("no-such-language", "some text\nmore text")

	lines := New("github").Block(block)

	require.Len(t, lines, 2)
	assert.Equal(t, "more text", joined(lines[1]))
}

func TestResetDropsCachedBlocks(t *testing.T) {
	h := New("monokai")
	first := model.NewBlock("go", "package main")
	second := model.NewBlock("go", "package main\n\nfunc main() {}")

	h.Block(first)
	h.Block(second)
	require.Len(t, h.cache, 2)

	h.Reset()
	assert.Empty(t, h.cache)

	// Blocks are tokenized again after a reset
	assert.Equal(t, "package main", joined(h.Block(first)[0]))
	assert.Len(t, h.cache, 1)
}
