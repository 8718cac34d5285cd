package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Code pane colors
	Background tcell.Color
	Code       tcell.Color
	Gutter     tcell.Color
	Focus      tcell.Color

	// Deck text colors
	Title   tcell.Color
	Caption tcell.Color

	// Pairing overlay colors
	DiffInserted tcell.Color
	DiffDeleted  tcell.Color
	DiffMoved    tcell.Color

	// Search prompt colors
	SearchLabel tcell.Color
	SearchText  tcell.Color
	SearchMatch tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name      string
	Highlight string // chroma style used for code, empty for the configured one
	Colors    Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:     tcell.ColorDefault,
			Code:           tcell.ColorDefault,
			Gutter:         tcell.ColorDefault,
			Focus:          tcell.ColorDefault,
			Title:          tcell.ColorDefault,
			Caption:        tcell.ColorDefault,
			DiffInserted:   tcell.ColorGreen,
			DiffDeleted:    tcell.ColorRed,
			DiffMoved:      tcell.ColorYellow,
			SearchLabel:    tcell.ColorDefault,
			SearchText:     tcell.ColorDefault,
			SearchMatch:    tcell.ColorDefault,
			HelpBackground: tcell.ColorDefault,
			HelpBorder:     tcell.ColorDefault,
			HelpTitle:      tcell.ColorDefault,
			HelpContent:    tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
		},
	}
}

// Dark returns the dark theme matching the browser component's code panel
func Dark() *Theme {
	return &Theme{
		Name:      "dark",
		Highlight: "monokai",
		Colors: Colors{
			Background:     HexToColor("#1e1e1e"), // Panel background
			Code:           HexToColor("#d4d4d4"), // Plain code
			Gutter:         HexToColor("#5a5a5a"),
			Focus:          HexToColor("#e5c07b"), // Interest marker
			Title:          HexToColor("#61afef"),
			Caption:        HexToColor("#abb2bf"),
			DiffInserted:   HexToColor("#98c379"),
			DiffDeleted:    HexToColor("#e06c75"),
			DiffMoved:      HexToColor("#d19a66"),
			SearchLabel:    HexToColor("#c678dd"),
			SearchText:     HexToColor("#d4d4d4"),
			SearchMatch:    HexToColor("#e5c07b"),
			HelpBackground: HexToColor("#252526"),
			HelpBorder:     HexToColor("#56b6c2"),
			HelpTitle:      HexToColor("#c678dd"),
			HelpContent:    HexToColor("#d4d4d4"),
			StatusMode:     HexToColor("#c678dd"),
			StatusMessage:  HexToColor("#98c379"),
		},
	}
}
