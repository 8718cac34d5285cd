package ui

import "fmt"

// KeyBindingInfo is a keybinding as shown in the help overlay
type KeyBindingInfo interface {
	GetKeys() string
	GetDescription() string
}

// HelpScreen is the keybinding overlay
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
}

// NewHelpScreen creates a hidden help overlay
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to list
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle shows or hides the overlay
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the overlay is open
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the overlay text
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, kb := range h.keybindings {
		keyWidth = max(keyWidth, StringWidth(kb.GetKeys()))
	}

	lines := make([]string, 0, len(h.keybindings)+4)
	for _, kb := range h.keybindings {
		lines = append(lines, fmt.Sprintf("  %s  %s", PadStringToWidth(kb.GetKeys(), keyWidth), kb.GetDescription()))
	}
	lines = append(lines, "",
		"Step search:",
		"  Tab/Shift+Tab  cycle matches   Up/Down  history",
		"  Enter          jump            Esc      cancel",
	)
	return lines
}

// Render draws the overlay
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	width, height := screen.GetWidth(), screen.GetHeight()
	lines := h.Lines()
	boxWidth := 0
	for _, l := range lines {
		boxWidth = max(boxWidth, StringWidth(l))
	}
	box := Rect{W: min(boxWidth+4, width), H: min(len(lines)+4, height)}
	box.X = (width - box.W) / 2
	box.Y = (height - box.H) / 2

	screen.Fill(box, screen.HelpStyle())
	drawBox(screen, box.X, box.Y, box.W, box.H, screen.HelpBorderStyle())
	screen.DrawStringLimited(box.X+2, box.Y, " Keys (? to close) ", box.W-4, screen.HelpTitleStyle())

	for i, l := range lines {
		y := box.Y + 2 + i
		if y >= box.Y+box.H-1 {
			break
		}
		screen.DrawStringLimited(box.X+2, y, l, box.W-4, screen.HelpStyle())
	}
}
