// Package highlight tokenizes code block lines with chroma.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/code-wave/internal/model"
)

// Span is a run of text drawn in one style
type Span struct {
	Text   string
	Color  tcell.Color // ColorDefault means the theme foreground
	Bold   bool
	Italic bool
}

// Highlighter turns blocks into styled spans, one slice per line. Results are
// cached per block.
type Highlighter struct {
	style   *chroma.Style
	enabled bool

	mu    sync.Mutex
	cache map[*model.CodeBlock][][]Span
}

// New creates a highlighter with the named chroma style. The name "none"
// disables highlighting and unknown names fall back to chroma's default.
func New(styleName string) *Highlighter {
	h := &Highlighter{
		enabled: styleName != "none",
		cache:   make(map[*model.CodeBlock][][]Span),
	}
	if h.enabled {
		h.style = styles.Get(styleName)
	}
	return h
}

// StyleNames lists the available chroma styles
func StyleNames() []string {
	return styles.Names()
}

// Block returns the spans of every line of block
func (h *Highlighter) Block(block *model.CodeBlock) [][]Span {
	h.mu.Lock()
	defer h.mu.Unlock()

	if spans, ok := h.cache[block]; ok {
		return spans
	}
	spans := h.tokenize(block)
	h.cache[block] = spans
	return spans
}

// Reset drops every cached block
func (h *Highlighter) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.cache)
}

func plain(block *model.CodeBlock) [][]Span {
	out := make([][]Span, block.Len())
	for i, line := range block.Lines {
		out[i] = []Span{{Text: line.Text, Color: tcell.ColorDefault}}
	}
	return out
}

func lexerFor(block *model.CodeBlock, source string) chroma.Lexer {
	var lexer chroma.Lexer
	if block.Lang != "" {
		lexer = lexers.Get(block.Lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func (h *Highlighter) tokenize(block *model.CodeBlock) [][]Span {
	if !h.enabled || block.Len() == 0 {
		return plain(block)
	}

	source := strings.Join(block.Texts(), "\n") + "\n"
	it, err := lexerFor(block, source).Tokenise(nil, source)
	if err != nil {
		return plain(block)
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())
	out := make([][]Span, block.Len())
	for i := range out {
		if i >= len(lines) {
			out[i] = []Span{{Text: block.Lines[i].Text, Color: tcell.ColorDefault}}
			continue
		}
		for _, tok := range lines[i] {
			text := strings.TrimRight(tok.Value, "\n")
			if text == "" {
				continue
			}
			out[i] = append(out[i], h.span(tok.Type, text))
		}
	}
	return out
}

func (h *Highlighter) span(tt chroma.TokenType, text string) Span {
	entry := h.style.Get(tt)
	s := Span{
		Text:   text,
		Color:  tcell.ColorDefault,
		Bold:   entry.Bold == chroma.Yes,
		Italic: entry.Italic == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		s.Color = tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue()))
	}
	return s
}
