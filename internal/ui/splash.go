package ui

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/code-wave/internal/model"
)

const titleCardWidth = 60

// TitleCard shows the deck title and intro before the first step
type TitleCard struct {
	visible bool
	title   string
	intro   string
	steps   int
}

// NewTitleCard creates a card for deck. It starts visible when the deck
// has a title or an intro.
func NewTitleCard(deck *model.Deck) *TitleCard {
	return &TitleCard{
		visible: deck.Title != "" || deck.Intro != "",
		title:   deck.Title,
		intro:   deck.Intro,
		steps:   deck.Len(),
	}
}

// Show makes the card visible
func (c *TitleCard) Show() {
	c.visible = true
}

// Hide makes the card invisible
func (c *TitleCard) Hide() {
	c.visible = false
}

// IsVisible reports whether the card is shown
func (c *TitleCard) IsVisible() bool {
	return c.visible
}

// Content returns the card's lines wrapped to width
func (c *TitleCard) Content(width int) []string {
	width = max(min(width, titleCardWidth), 10)

	var lines []string
	if c.title != "" {
		lines = append(lines, WrapText(c.title, width)...)
		lines = append(lines, "")
	}
	for i, para := range strings.Split(c.intro, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, WrapText(strings.Join(strings.Fields(para), " "), width)...)
	}
	lines = append(lines, "", "", stepHint(c.steps))
	return lines
}

func stepHint(n int) string {
	noun := "steps"
	if n == 1 {
		noun = "step"
	}
	return fmt.Sprintf("%d %s. Press space to begin, ? for keys.", n, noun)
}

// Render draws the card as a centred block
func (c *TitleCard) Render(screen *Screen) {
	if !c.visible {
		return
	}
	width, height := screen.GetWidth(), screen.GetHeight()
	screen.Fill(Rect{W: width, H: height}, screen.BackgroundStyle())

	content := c.Content(width - 4)
	blockWidth := 0
	for _, l := range content {
		blockWidth = max(blockWidth, StringWidth(l))
	}
	startX := max(0, (width-blockWidth)/2)
	startY := max(0, (height-len(content))/2)

	titleRows := 0
	if c.title != "" {
		titleRows = len(WrapText(c.title, max(min(width-4, titleCardWidth), 10)))
	}
	for i, line := range content {
		y := startY + i
		if y >= height {
			break
		}
		style := screen.CaptionStyle()
		switch {
		case i < titleRows:
			style = screen.TitleStyle()
		case i == len(content)-1:
			style = screen.StatusMessageStyle()
		}
		screen.DrawStringLimited(startX, y, line, width-startX, style)
	}
}
