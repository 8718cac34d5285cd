package ui

import (
	"math"
	"time"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/highlight"
	"github.com/pstuifzand/code-wave/internal/model"
	"github.com/pstuifzand/code-wave/internal/viewport"
)

// gutterWidth is the focus marker column plus a space
const gutterWidth = 2

// CodePane draws code blocks and the frames of a transition between them
type CodePane struct {
	highlighter *highlight.Highlighter
	dimOpacity  float64
}

// NewCodePane creates a code pane. Lines outside the interest set of a
// resting block are drawn at dimOpacity.
func NewCodePane(h *highlight.Highlighter, dimOpacity float64) *CodePane {
	return &CodePane{highlighter: h, dimOpacity: dimOpacity}
}

// Reset forgets the highlighting of blocks drawn so far
func (p *CodePane) Reset() {
	p.highlighter.Reset()
}

// DrawBlock draws a block at rest with its top left corner at x, y
func (p *CodePane) DrawBlock(screen *Screen, area Rect, x, y int, block *model.CodeBlock) {
	spans := p.highlighter.Block(block)
	for i := range block.Lines {
		opacity := p.dimOpacity
		if block.Interest.Contains(i) {
			opacity = 1
			screen.SetCellClipped(area, x, y+i, '▌', screen.FocusStyle())
		}
		p.drawLine(screen, area, x+gutterWidth, y+i, spans[i], opacity)
	}
}

// DrawTransition draws plan elapsed after it started. Lines are laid out
// relative to x, y; deleted lines keep their old rows.
func (p *CodePane) DrawTransition(screen *Screen, area Rect, x, y int, plan *choreo.Plan, from, to *model.CodeBlock, elapsed time.Duration) {
	oldSpans := p.highlighter.Block(from)
	newSpans := p.highlighter.Block(to)

	for _, step := range plan.Steps {
		frame := choreo.Sample(step, elapsed)
		if !frame.Visible() {
			continue
		}

		var row int
		var spans []highlight.Span
		if step.Kind == choreo.KindSlideOut {
			row = step.Pairing.OldIndex
			spans = oldSpans[row]
		} else {
			row = step.Pairing.NewIndex
			spans = newSpans[row]
		}

		lineY := y + row + int(math.Round(frame.Y))
		lineX := x + gutterWidth + int(math.Round(frame.X))
		if frame.Done && step.Kind != choreo.KindSlideOut && plan.Interest.Contains(step.Pairing.NewIndex) {
			screen.SetCellClipped(area, x, lineY, '▌', screen.FocusStyle())
		}
		p.drawLine(screen, area, lineX, lineY, spans, frame.Opacity)
	}
}

func (p *CodePane) drawLine(screen *Screen, area Rect, x, y int, spans []highlight.Span, opacity float64) {
	if y < area.Y || y >= area.Y+area.H {
		return
	}
	col := x
	for _, span := range spans {
		style := screen.CodeStyle(span.Color, opacity).Bold(span.Bold).Italic(span.Italic)
		for _, r := range viewport.ExpandTabs(span.Text) {
			w := RuneWidth(r)
			if w == 0 {
				continue
			}
			if col >= area.X && col+w <= area.X+area.W {
				screen.SetCell(col, y, r, style)
			}
			col += w
		}
	}
}
