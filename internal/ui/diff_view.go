package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/diff"
	"github.com/pstuifzand/code-wave/internal/model"
)

// PairingView is the overlay listing how the lines of the last transition
// were paired
type PairingView struct {
	visible bool
	title   string
	lines   []diff.DiffLine
	scroll  int
	height  int // Content rows at the last render
}

// NewPairingView creates a hidden pairing overlay
func NewPairingView() *PairingView {
	return &PairingView{}
}

// Show fills the overlay from a completed plan
func (v *PairingView) Show(plan *choreo.Plan, deck *model.Deck) {
	from, to := deck.Block(plan.From), deck.Block(plan.To)
	v.title = fmt.Sprintf(" Step %d → %d ", plan.From+1, plan.To+1)
	v.lines = diff.BuildDiffLines(plan.Diff, from.Texts(), to.Texts())
	v.scroll = 0
	v.visible = true
}

// Hide closes the overlay
func (v *PairingView) Hide() {
	v.visible = false
}

// IsVisible reports whether the overlay is open
func (v *PairingView) IsVisible() bool {
	return v.visible
}

// Lines returns the rows the overlay shows
func (v *PairingView) Lines() []diff.DiffLine {
	return v.lines
}

// HandleKey scrolls or closes the overlay
func (v *PairingView) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.Hide()
	case tcell.KeyUp:
		v.scrollBy(-1)
	case tcell.KeyDown:
		v.scrollBy(1)
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		v.scrollBy(-max(v.height/2, 1))
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		v.scrollBy(max(v.height/2, 1))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'd':
			v.Hide()
		case 'j':
			v.scrollBy(1)
		case 'k':
			v.scrollBy(-1)
		}
	}
}

func (v *PairingView) scrollBy(n int) {
	v.scroll = max(0, min(v.scroll+n, len(v.lines)-max(v.height, 1)))
}

// Render draws the overlay centred on the screen
func (v *PairingView) Render(screen *Screen) {
	if !v.visible {
		return
	}
	width, height := screen.GetWidth(), screen.GetHeight()
	box := Rect{X: 2, Y: 1, W: width - 4, H: height - 2}
	if box.W < 20 || box.H < 5 {
		return
	}

	screen.Fill(box, screen.HelpStyle())
	drawBox(screen, box.X, box.Y, box.W, box.H, screen.HelpBorderStyle())
	screen.DrawStringLimited(box.X+2, box.Y, v.title, box.W-4, screen.HelpTitleStyle())

	v.height = box.H - 2
	for row := 0; row < v.height && v.scroll+row < len(v.lines); row++ {
		line := v.lines[v.scroll+row]
		screen.DrawStringLimited(box.X+2, box.Y+1+row, line.Content, box.W-4, v.style(screen, line.Type))
	}

	footer := " j/k scroll  q close "
	screen.DrawStringLimited(box.X+box.W-StringWidth(footer)-2, box.Y+box.H-1, footer, box.W-4, screen.HelpBorderStyle())
}

func (v *PairingView) style(screen *Screen, t diff.DiffLineType) tcell.Style {
	switch t {
	case diff.DiffTypeInserted:
		return screen.DiffInsertedStyle()
	case diff.DiffTypeDeleted:
		return screen.DiffDeletedStyle()
	case diff.DiffTypeMoved:
		return screen.DiffMovedStyle()
	case diff.DiffTypeSummary, diff.DiffTypeHeader:
		return screen.HelpTitleStyle()
	default:
		return screen.HelpStyle()
	}
}
