// Package storage loads decks from Markdown and JSON files.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pstuifzand/code-wave/internal/model"
)

// ErrNoCodeBlocks is returned for documents without a single code block
var ErrNoCodeBlocks = errors.New("deck has no code blocks")

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Load reads a deck, choosing the format from the file extension
func Load(path string) (*model.Deck, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path).Load()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	deck, err := ParseMarkdown(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deck, nil
}

// ParseMarkdown builds a deck from a Markdown document. Every fenced or
// indented code block becomes a step and the prose after it its caption.
func ParseMarkdown(src []byte) (*model.Deck, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	deck := &model.Deck{}
	var intro, caption []string
	var last *model.CodeBlock

	flush := func() {
		if last != nil {
			last.Caption = strings.Join(caption, "\n\n")
		}
		caption = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			flush()
			block, err := fencedBlock(node, src)
			if err != nil {
				return nil, fmt.Errorf("code block %d: %w", deck.Len()+1, err)
			}
			deck.Blocks = append(deck.Blocks, block)
			last = block
		case *ast.CodeBlock:
			flush()
			block := &model.CodeBlock{Lines: codeLines(node, src)}
			deck.Blocks = append(deck.Blocks, block)
			last = block
		default:
			if h, ok := n.(*ast.Heading); ok && h.Level == 1 && deck.Title == "" && last == nil {
				deck.Title = strings.TrimSpace(string(rawText(h, src)))
				continue
			}
			prose := strings.TrimSpace(string(rawText(n, src)))
			if prose == "" {
				continue
			}
			if last == nil {
				intro = append(intro, prose)
			} else {
				caption = append(caption, prose)
			}
		}
	}
	flush()

	if deck.Len() == 0 {
		return nil, ErrNoCodeBlocks
	}
	deck.Intro = strings.Join(intro, "\n\n")
	deck.Reindex()
	return deck, nil
}

func fencedBlock(node *ast.FencedCodeBlock, src []byte) (*model.CodeBlock, error) {
	block := &model.CodeBlock{Lines: codeLines(node, src)}
	if node.Info == nil {
		return block, nil
	}

	lang, selections, err := infoSelections(string(node.Info.Segment.Value(src)))
	if err != nil {
		return nil, err
	}
	block.Lang = lang

	for _, sel := range selections {
		indices, err := ParseRanges(sel, block.Len())
		if err != nil {
			return nil, err
		}
		for _, i := range indices {
			block.Lines[i].Highlight = true
		}
	}
	return block, nil
}

// infoSelections splits a fence info string into its language and its line
// selections. A brace group may contain spaces, as in "{0, 2-3}".
func infoSelections(info string) (lang string, selections []string, err error) {
	rest := strings.TrimSpace(info)
	for first := true; rest != ""; first = false {
		var tok string
		if strings.HasPrefix(rest, "{") {
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", nil, fmt.Errorf("unterminated line selection %q", rest)
			}
			tok, rest = rest[:end+1], rest[end+1:]
		} else {
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				end = len(rest)
			}
			tok, rest = rest[:end], rest[end:]
		}
		rest = strings.TrimLeft(rest, " \t")

		switch {
		case looksLikeRange(tok):
			selections = append(selections, tok)
		case first:
			lang = tok
		}
	}
	return lang, selections, nil
}

// codeLines returns the lines of a code block node, stripping <mark> markup
func codeLines(n ast.Node, src []byte) []model.Line {
	segs := n.Lines()
	lines := make([]model.Line, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		raw := strings.TrimRight(string(seg.Value(src)), "\r\n")
		lines = append(lines, markedLine(raw))
	}
	return lines
}

func markedLine(raw string) model.Line {
	body := strings.TrimLeft(raw, " \t")
	indent := raw[:len(raw)-len(body)]
	if strings.HasPrefix(body, markOpen) && strings.HasSuffix(body, markClose) && len(body) >= len(markOpen)+len(markClose) {
		inner := body[len(markOpen) : len(body)-len(markClose)]
		return model.Line{Text: indent + inner, Highlight: true}
	}
	return model.Line{Text: raw}
}

// rawText returns the source text of a block node and its block children
func rawText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			buf.Write(seg.Value(src))
		}
		return bytes.TrimRight(buf.Bytes(), "\n")
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		part := rawText(c, src)
		if len(part) == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(part)
	}
	return buf.Bytes()
}

func looksLikeRange(s string) bool {
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return true
	}
	if a, b, ok := strings.Cut(s, ":"); ok {
		return isNumber(a) && isNumber(b)
	}
	return false
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil && s != ""
}

// ParseRanges parses a line selection such as "{1,3-4}" or "1:2" for a block
// of lines lines. Indices are zero-based and ranges inclusive; an index past
// the end of the block is an error.
func ParseRanges(s string, lines int) ([]int, error) {
	if a, b, ok := strings.Cut(s, ":"); ok && !strings.HasPrefix(s, "{") {
		return expandRange(a, b, lines)
	}

	body, ok := strings.CutPrefix(s, "{")
	if !ok {
		return nil, fmt.Errorf("invalid line selection %q", s)
	}
	body, ok = strings.CutSuffix(body, "}")
	if !ok {
		return nil, fmt.Errorf("invalid line selection %q", s)
	}

	var out []int
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			hi = lo
		}
		r, err := expandRange(lo, hi, lines)
		if err != nil {
			return nil, err
		}
		out = append(out, r...)
	}
	return out, nil
}

func expandRange(a, b string, lines int) ([]int, error) {
	lo, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return nil, fmt.Errorf("invalid line number %q", a)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return nil, fmt.Errorf("invalid line number %q", b)
	}
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("invalid line range %d-%d", lo, hi)
	}
	if hi >= lines {
		return nil, fmt.Errorf("highlighted line %d outside block of %d lines", hi, lines)
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out, nil
}
