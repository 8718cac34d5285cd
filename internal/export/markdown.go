package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pstuifzand/code-wave/internal/model"
)

// ExportToMarkdown writes a deck to a Markdown file. Each fence carries the
// block's interest set in its info string so the file loads back with the
// same focus lines.
func ExportToMarkdown(deck *model.Deck, filePath string) error {
	var sb strings.Builder
	if err := WriteMarkdown(&sb, deck); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}

	return nil
}

// WriteMarkdown writes a deck as Markdown to w
func WriteMarkdown(w io.Writer, deck *model.Deck) error {
	var sb strings.Builder

	if deck.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(deck.Title)
		sb.WriteString("\n\n")
	}
	if deck.Intro != "" {
		sb.WriteString(deck.Intro)
		sb.WriteString("\n\n")
	}

	for _, block := range deck.Blocks {
		writeBlock(&sb, block)
	}

	_, err := io.WriteString(w, strings.TrimRight(sb.String(), "\n")+"\n")
	return err
}

func writeBlock(sb *strings.Builder, block *model.CodeBlock) {
	fence := fenceFor(block)

	info := block.Lang
	if ranges := FormatRanges(block.Interest.Indices()); ranges != "" {
		if info != "" {
			info += " "
		}
		info += ranges
	}

	sb.WriteString(fence)
	sb.WriteString(info)
	sb.WriteString("\n")
	for _, line := range block.Lines {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	sb.WriteString(fence)
	sb.WriteString("\n\n")

	if block.Caption != "" {
		sb.WriteString(block.Caption)
		sb.WriteString("\n\n")
	}
}

// fenceFor returns a backtick fence longer than any backtick run in the block
func fenceFor(block *model.CodeBlock) string {
	longest := 0
	for _, line := range block.Lines {
		run := 0
		for _, r := range line.Text {
			if r == '`' {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// FormatRanges formats sorted line indices as "{0,2-4}". Empty input gives
// an empty string.
func FormatRanges(indices []int) string {
	if len(indices) == 0 {
		return ""
	}

	var parts []string
	start, prev := indices[0], indices[0]
	emit := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}
	for _, i := range indices[1:] {
		if i == prev+1 {
			prev = i
			continue
		}
		emit()
		start, prev = i, i
	}
	emit()

	return "{" + strings.Join(parts, ",") + "}"
}
