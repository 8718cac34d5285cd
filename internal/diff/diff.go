// Package diff aligns two blocks of code line by line with patience diff and
// classifies every line as matched, moved, inserted or deleted.
package diff

// Diff compares old and new lines and returns their alignment.
// Lines are compared by exact string equality. Diff never fails.
func Diff(oldLines, newLines []string) *Result {
	oldPair := make([]int, len(oldLines))
	newPair := make([]int, len(newLines))
	for i := range oldPair {
		oldPair[i] = None
	}
	for j := range newPair {
		newPair[j] = None
	}
	displaced := make([]bool, len(newLines))

	for _, m := range align(oldLines, newLines) {
		oldPair[m.a] = m.b
		newPair[m.b] = m.a
	}

	detectMoves(oldLines, newLines, oldPair, newPair, displaced)

	return assemble(oldPair, newPair, displaced)
}

// detectMoves re-aligns the leftover deleted lines against the leftover
// inserted lines until a round finds nothing new. Every pair found here is
// displaced relative to the common subsequence.
func detectMoves(oldLines, newLines []string, oldPair, newPair []int, displaced []bool) {
	for {
		var delIdx, insIdx []int
		for i, p := range oldPair {
			if p == None {
				delIdx = append(delIdx, i)
			}
		}
		for j, p := range newPair {
			if p == None {
				insIdx = append(insIdx, j)
			}
		}
		if len(delIdx) == 0 || len(insIdx) == 0 {
			return
		}

		deleted := make([]string, len(delIdx))
		for k, i := range delIdx {
			deleted[k] = oldLines[i]
		}
		inserted := make([]string, len(insIdx))
		for k, j := range insIdx {
			inserted[k] = newLines[j]
		}

		found := align(deleted, inserted)
		if len(found) == 0 {
			return
		}
		for _, m := range found {
			i, j := delIdx[m.a], insIdx[m.b]
			oldPair[i] = j
			newPair[j] = i
			displaced[j] = true
		}
	}
}

// assemble emits pairings in new-block order. A deletion is placed ahead of
// everything in the gap that precedes the first in-order match past it, so
// deletions come before insertions and read left to right like a regular diff.
func assemble(oldPair, newPair []int, displaced []bool) *Result {
	var deletions []int
	for i, p := range oldPair {
		if p == None {
			deletions = append(deletions, i)
		}
	}

	result := &Result{
		Pairings:     make([]Pairing, 0, len(newPair)+len(deletions)),
		DeletedCount: len(deletions),
	}

	// nextAnchor[j] is the old index of the first in-order match at or after j
	nextAnchor := make([]int, len(newPair)+1)
	nextAnchor[len(newPair)] = len(oldPair)
	for j := len(newPair) - 1; j >= 0; j-- {
		nextAnchor[j] = nextAnchor[j+1]
		if newPair[j] != None && !displaced[j] {
			nextAnchor[j] = newPair[j]
		}
	}

	next := 0
	flush := func(before int) {
		for next < len(deletions) && deletions[next] < before {
			result.Pairings = append(result.Pairings, Pairing{OldIndex: deletions[next], NewIndex: None})
			next++
		}
	}

	for j, o := range newPair {
		flush(nextAnchor[j])
		if o == None {
			result.InsertedCount++
			result.Pairings = append(result.Pairings, Pairing{OldIndex: None, NewIndex: j})
			continue
		}
		result.Pairings = append(result.Pairings, Pairing{
			OldIndex:  o,
			NewIndex:  j,
			Moved:     o != j,
			Displaced: displaced[j],
		})
	}
	flush(len(oldPair))

	return result
}
