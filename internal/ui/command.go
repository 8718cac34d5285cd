package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// CommandMode is the `:` prompt
type CommandMode struct {
	active  bool
	input   []rune
	cursor  int
	history *History
}

// NewCommandMode creates a command prompt with an in-memory history
func NewCommandMode() *CommandMode {
	return &CommandMode{history: NewHistory(50)}
}

// Start opens the prompt
func (c *CommandMode) Start() {
	c.active = true
	c.input = c.input[:0]
	c.cursor = 0
	c.history.Reset()
}

// Stop closes the prompt
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive reports whether the prompt is open
func (c *CommandMode) IsActive() bool {
	return c.active
}

// Input returns the trimmed text typed so far
func (c *CommandMode) Input() string {
	return strings.TrimSpace(string(c.input))
}

func (c *CommandMode) set(s string) {
	c.input = []rune(s)
	c.cursor = len(c.input)
}

// deleteWordBackwards removes the word before the cursor
func (c *CommandMode) deleteWordBackwards() {
	pos := c.cursor
	for pos > 0 && isBreakSpace(c.input[pos-1]) {
		pos--
	}
	for pos > 0 && !isBreakSpace(c.input[pos-1]) {
		pos--
	}
	c.input = append(c.input[:pos], c.input[c.cursor:]...)
	c.cursor = pos
}

// HandleKey processes a key press. done is true once the prompt closes;
// command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := c.Input()
		_ = c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if prev, ok := c.history.Previous(string(c.input)); ok {
			c.set(prev)
		}
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.set(next)
		}
	case tcell.KeyCtrlW:
		c.deleteWordBackwards()
	case tcell.KeyCtrlU:
		c.input = append(c.input[:0], c.input[c.cursor:]...)
		c.cursor = 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursor > 0 {
			c.input = append(c.input[:c.cursor-1], c.input[c.cursor:]...)
			c.cursor--
		} else if len(c.input) == 0 {
			c.Stop()
			return "", true
		}
	case tcell.KeyLeft:
		c.cursor = max(c.cursor-1, 0)
	case tcell.KeyRight:
		c.cursor = min(c.cursor+1, len(c.input))
	case tcell.KeyHome:
		c.cursor = 0
	case tcell.KeyEnd:
		c.cursor = len(c.input)
	case tcell.KeyRune:
		c.input = append(c.input[:c.cursor], append([]rune{ev.Rune()}, c.input[c.cursor:]...)...)
		c.cursor++
	}
	return "", false
}

// Render draws the prompt on row y
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	screen.Fill(Rect{Y: y, W: screen.GetWidth(), H: 1}, screen.SearchTextStyle())
	x := screen.DrawString(0, y, ":", screen.SearchLabelStyle())
	for i, r := range c.input {
		style := screen.SearchTextStyle()
		if i == c.cursor {
			style = screen.SearchCursorStyle()
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if c.cursor >= len(c.input) {
		screen.SetCell(x, y, ' ', screen.SearchCursorStyle())
	}
}
