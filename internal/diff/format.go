package diff

import (
	"fmt"
	"strings"
)

// BuildDiffLines converts a Result into formatted display lines.
// This is suitable for both CLI and TUI output
func BuildDiffLines(result *Result, oldLines, newLines []string) []DiffLine {
	var lines []DiffLine

	for _, p := range result.Pairings {
		switch {
		case p.IsDelete():
			lines = append(lines, DiffLine{
				Type:    DiffTypeDeleted,
				Content: fmt.Sprintf("- %4d       %s", p.OldIndex, oldLines[p.OldIndex]),
			})
		case p.IsInsert():
			lines = append(lines, DiffLine{
				Type:    DiffTypeInserted,
				Content: fmt.Sprintf("+      %4d %s", p.NewIndex, newLines[p.NewIndex]),
			})
		case p.Moved:
			lines = append(lines, DiffLine{
				Type:    DiffTypeMoved,
				Content: fmt.Sprintf("~ %4d %4d %s", p.OldIndex, p.NewIndex, newLines[p.NewIndex]),
			})
		default:
			lines = append(lines, DiffLine{
				Type:    DiffTypeContext,
				Content: fmt.Sprintf("  %4d %4d %s", p.OldIndex, p.NewIndex, newLines[p.NewIndex]),
			})
		}
	}

	// Summary section
	lines = append(lines, DiffLine{Type: DiffTypeBlank})
	lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: Summary(result)})

	return lines
}

// Summary returns a one-line description of the counts in a result
func Summary(result *Result) string {
	return fmt.Sprintf("%d inserted, %d deleted, %d moved",
		result.InsertedCount, result.DeletedCount, result.MovedCount())
}

// FormatLines joins display lines into plain text, one per line
func FormatLines(lines []DiffLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(strings.Repeat("  ", l.Indent))
		sb.WriteString(l.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
