package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Widths here are display columns, not bytes or runes.

// RuneWidth returns the display width of a single rune. Control and
// combining characters take no columns.
func RuneWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 0)
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// TruncateToWidthWithEllipsis truncates a string with "..." if it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	if StringWidth(s) <= maxWidth {
		return s
	}
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth pads a string with spaces to width columns
func PadStringToWidth(s string, width int) string {
	if pad := width - StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func isBreakSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// CalculateBreakPoint finds where to break text for wrapping at maxWidth.
// It returns the byte index to break at and the width before it, preferring
// the last space and falling back to a rune boundary.
func CalculateBreakPoint(s string, maxWidth int) (byteIndex int, actualWidth int) {
	if maxWidth <= 0 {
		return 0, 0
	}

	width := 0
	lastSpace, lastSpaceWidth := -1, 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			if lastSpace >= 0 {
				return lastSpace + 1, lastSpaceWidth
			}
			return i, width
		}
		width += rw
		if isBreakSpace(r) {
			lastSpace, lastSpaceWidth = i, width
		}
	}
	return len(s), width
}

// WrapText wraps s to lines of at most width columns. Newlines in s start
// new lines.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		para = strings.TrimRight(para, " ")
		if para == "" {
			lines = append(lines, "")
			continue
		}
		for para != "" {
			idx, _ := CalculateBreakPoint(para, width)
			if idx == 0 {
				// A single rune wider than the line
				_, idx = utf8.DecodeRuneInString(para)
			}
			lines = append(lines, strings.TrimRight(para[:idx], " \t"))
			para = strings.TrimLeft(para[idx:], " \t")
		}
	}
	return lines
}
