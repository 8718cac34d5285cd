package diff

import (
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// edit is one line of a linear edit script
type edit struct {
	op   byte // ' ', '-' or '+'
	text string
	a, b int // positions in old and new when the edit starts
}

// editScript linearises a result along its in-order matches. Displaced
// pairs show up as a deletion at the old position and an insertion at the
// new one, which is how a unified diff expresses a move.
func editScript(result *Result, oldLines, newLines []string) []edit {
	var edits []edit
	ai, bi := 0, 0
	emitUntil := func(a, b int) {
		for ; ai < a; ai++ {
			edits = append(edits, edit{'-', oldLines[ai], ai, bi})
		}
		for ; bi < b; bi++ {
			edits = append(edits, edit{'+', newLines[bi], ai, bi})
		}
	}

	for _, p := range result.backbone() {
		emitUntil(p.OldIndex, p.NewIndex)
		edits = append(edits, edit{' ', oldLines[ai], ai, bi})
		ai++
		bi++
	}
	emitUntil(len(oldLines), len(newLines))
	return edits
}

// Unified renders a result as a unified diff with the given number of
// context lines around each change
func Unified(result *Result, oldLines, newLines []string, oldName, newName string, context int) ([]byte, error) {
	edits := editScript(result, oldLines, newLines)
	if context < 0 {
		context = 0
	}

	fd := &godiff.FileDiff{
		OrigName: oldName,
		NewName:  newName,
	}

	for i := 0; i < len(edits); {
		if edits[i].op == ' ' {
			i++
			continue
		}

		start := max(0, i-context)
		last := i
		for j := i; j < len(edits); j++ {
			if edits[j].op != ' ' {
				last = j
			} else if j-last > 2*context {
				break
			}
		}
		end := min(len(edits), last+context+1)

		fd.Hunks = append(fd.Hunks, buildHunk(edits[start:end]))
		i = end
	}

	if len(fd.Hunks) == 0 {
		return nil, nil
	}
	return godiff.PrintFileDiff(fd)
}

func buildHunk(edits []edit) *godiff.Hunk {
	var body strings.Builder
	var origLines, newLines int32
	for _, e := range edits {
		body.WriteByte(e.op)
		body.WriteString(e.text)
		body.WriteByte('\n')
		if e.op != '+' {
			origLines++
		}
		if e.op != '-' {
			newLines++
		}
	}

	first := edits[0]
	origStart := int32(first.a) + 1
	if origLines == 0 {
		origStart = int32(first.a)
	}
	newStart := int32(first.b) + 1
	if newLines == 0 {
		newStart = int32(first.b)
	}

	return &godiff.Hunk{
		OrigStartLine: origStart,
		OrigLines:     origLines,
		NewStartLine:  newStart,
		NewLines:      newLines,
		Body:          []byte(body.String()),
	}
}
