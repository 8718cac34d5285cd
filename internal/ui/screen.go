package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/code-wave/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreenWithTheme creates a new Screen instance with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFromTcell(tcellScreen, t)
}

// NewScreenFromTcell wraps an existing tcell screen, such as a simulation
// screen in tests, and initializes it
func NewScreenFromTcell(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear fills the screen with the theme background
func (s *Screen) Clear() {
	s.tcellScreen.SetStyle(s.BackgroundStyle())
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number of
// columns used
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x+col, y, r, style)
		col += w
	}
	return col
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// Fill paints a rectangle with spaces in style
func (s *Screen) Fill(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetCell(x, y, ' ', style)
		}
	}
}

// PollEvent polls for the next event (key press, resize, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event for PollEvent
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize and redraws everything
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Rect is a screen area
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell x, y lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Theme-aware style methods

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Code, s.Theme.Colors.Background)
}

// CodeStyle returns the style for a code cell with foreground fg at opacity
func (s *Screen) CodeStyle(fg tcell.Color, opacity float64) tcell.Style {
	if fg == tcell.ColorDefault {
		fg = s.Theme.Colors.Code
	}
	faded, ok := theme.Fade(fg, s.Theme.Colors.Background, opacity)
	style := theme.ColorPairToStyle(faded, s.Theme.Colors.Background)
	if !ok && opacity < 1 {
		style = style.Dim(true)
	}
	return style
}

// FocusStyle returns the style for the interest marker in the gutter
func (s *Screen) FocusStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Focus, s.Theme.Colors.Background)
}

// GutterStyle returns the style for line numbers
func (s *Screen) GutterStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Gutter, s.Theme.Colors.Background)
}

// TitleStyle returns the style for the deck title
func (s *Screen) TitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Title, s.Theme.Colors.Background).Bold(true)
}

// CaptionStyle returns the style for step captions
func (s *Screen) CaptionStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Caption, s.Theme.Colors.Background)
}

// DiffInsertedStyle returns the style for inserted lines in the pairing view
func (s *Screen) DiffInsertedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DiffInserted, s.Theme.Colors.HelpBackground)
}

// DiffDeletedStyle returns the style for deleted lines in the pairing view
func (s *Screen) DiffDeletedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DiffDeleted, s.Theme.Colors.HelpBackground)
}

// DiffMovedStyle returns the style for moved lines in the pairing view
func (s *Screen) DiffMovedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DiffMoved, s.Theme.Colors.HelpBackground)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchLabel, s.Theme.Colors.Background)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchText, s.Theme.Colors.Background)
}

// SearchMatchStyle returns the style for the selected search candidate
func (s *Screen) SearchMatchStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchMatch, s.Theme.Colors.Background).Bold(true)
}

// SearchCursorStyle returns the style for the search cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return s.SearchTextStyle().Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for the step indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMode, s.Theme.Colors.Background).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// drawBox draws a simple box border
func drawBox(screen *Screen, x, y, width, height int, style tcell.Style) {
	screen.SetCell(x, y, '┌', style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y, '─', style)
	}
	screen.SetCell(x+width-1, y, '┐', style)

	screen.SetCell(x, y+height-1, '└', style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y+height-1, '─', style)
	}
	screen.SetCell(x+width-1, y+height-1, '┘', style)

	for i := 1; i < height-1; i++ {
		screen.SetCell(x, y+i, '│', style)
		screen.SetCell(x+width-1, y+i, '│', style)
	}
}

// SetCellClipped sets a cell only when it lies inside area
func (s *Screen) SetCellClipped(area Rect, x, y int, r rune, style tcell.Style) {
	if area.Contains(x, y) {
		s.SetCell(x, y, r, style)
	}
}
