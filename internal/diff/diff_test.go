package diff

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// checkCoverage verifies that every line index appears at most once on its
// side and that the counts agree with the pairings
func checkCoverage(t *testing.T, oldLines, newLines []string, r *Result) {
	t.Helper()

	seenOld := make(map[int]int)
	seenNew := make(map[int]int)
	inserted, deleted := 0, 0
	lastNew := -1
	for _, p := range r.Pairings {
		if p.OldIndex != None {
			seenOld[p.OldIndex]++
		}
		if p.NewIndex != None {
			seenNew[p.NewIndex]++
			assert.Greater(t, p.NewIndex, lastNew, "pairings must ascend on the new side")
			lastNew = p.NewIndex
		}
		if p.IsInsert() {
			inserted++
		}
		if p.IsDelete() {
			deleted++
		}
		if p.IsMatch() {
			assert.Equal(t, oldLines[p.OldIndex], newLines[p.NewIndex])
			assert.Equal(t, p.OldIndex != p.NewIndex, p.Moved)
		}
		assert.False(t, p.OldIndex == None && p.NewIndex == None, "empty pairing")
	}

	for i := range oldLines {
		assert.Equal(t, 1, seenOld[i], "old line %d", i)
	}
	for j := range newLines {
		assert.Equal(t, 1, seenNew[j], "new line %d", j)
	}
	assert.Equal(t, inserted, r.InsertedCount)
	assert.Equal(t, deleted, r.DeletedCount)
}

func TestDiffIdentity(t *testing.T) {
	x := lines("package main,,func main() {,}")
	r := Diff(x, x)

	require.Len(t, r.Pairings, len(x))
	for i, p := range r.Pairings {
		assert.Equal(t, i, p.OldIndex)
		assert.Equal(t, i, p.NewIndex)
		assert.False(t, p.Moved)
		assert.False(t, p.Displaced)
	}
	assert.Zero(t, r.InsertedCount)
	assert.Zero(t, r.DeletedCount)
	assert.False(t, r.HasMoves())
}

func TestDiffPureAppend(t *testing.T) {
	r := Diff(lines("a,b"), lines("a,b,c"))

	want := []Pairing{
		{OldIndex: 0, NewIndex: 0},
		{OldIndex: 1, NewIndex: 1},
		{OldIndex: None, NewIndex: 2},
	}
	if d := cmp.Diff(want, r.Pairings); d != "" {
		t.Errorf("pairings mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, 1, r.InsertedCount)
	assert.Equal(t, 0, r.DeletedCount)
}

func TestDiffPureDeletion(t *testing.T) {
	old := lines("a,b,c")
	r := Diff(old, lines("a,c"))

	require.Len(t, r.Pairings, 3)
	assert.Equal(t, 1, r.DeletedCount)
	assert.Equal(t, 0, r.InsertedCount)

	assert.True(t, r.Pairings[0].IsMatch())
	assert.Equal(t, "a", old[r.Pairings[0].OldIndex])
	assert.True(t, r.Pairings[1].IsDelete())
	assert.Equal(t, "b", old[r.Pairings[1].OldIndex])
	assert.True(t, r.Pairings[2].IsMatch())
	assert.Equal(t, "c", old[r.Pairings[2].OldIndex])
	assert.False(t, r.Pairings[2].Displaced)
}

func TestDiffPureReorder(t *testing.T) {
	r := Diff(lines("a,b"), lines("b,a"))

	require.Len(t, r.Pairings, 2)
	for _, p := range r.Pairings {
		assert.True(t, p.IsMatch())
		assert.True(t, p.Moved)
	}
	assert.Zero(t, r.InsertedCount)
	assert.Zero(t, r.DeletedCount)
}

func TestDiffEmptySides(t *testing.T) {
	r := Diff(nil, lines("a,b"))
	assert.Equal(t, 2, r.InsertedCount)
	for _, p := range r.Pairings {
		assert.True(t, p.IsInsert())
	}

	r = Diff(lines("a,b,c"), nil)
	assert.Equal(t, 3, r.DeletedCount)
	for _, p := range r.Pairings {
		assert.True(t, p.IsDelete())
	}

	r = Diff(nil, nil)
	assert.Empty(t, r.Pairings)
}

func TestDiffDeletionsPrecedeInsertions(t *testing.T) {
	r := Diff(lines("a,b,c"), lines("a,x,c"))

	want := []Pairing{
		{OldIndex: 0, NewIndex: 0},
		{OldIndex: 1, NewIndex: None},
		{OldIndex: None, NewIndex: 1},
		{OldIndex: 2, NewIndex: 2},
	}
	if d := cmp.Diff(want, r.Pairings); d != "" {
		t.Errorf("pairings mismatch (-want +got):\n%s", d)
	}
}

func TestDiffWhitespaceIsSignificant(t *testing.T) {
	r := Diff([]string{"a", "b"}, []string{"a", "b "})
	assert.Equal(t, 1, r.InsertedCount)
	assert.Equal(t, 1, r.DeletedCount)
}

func TestDiffDetectsBlockMove(t *testing.T) {
	old := lines("x,a,b,c")
	r := Diff(old, lines("a,b,c,x"))

	assert.Zero(t, r.InsertedCount)
	assert.Zero(t, r.DeletedCount)
	checkCoverage(t, old, lines("a,b,c,x"), r)

	last := r.Pairings[len(r.Pairings)-1]
	assert.Equal(t, 0, last.OldIndex)
	assert.Equal(t, 3, last.NewIndex)
	assert.True(t, last.Displaced)
	assert.True(t, last.Moved)

	assert.False(t, r.Pairings[0].Displaced)
	assert.True(t, r.Pairings[0].Moved, "a shifted from 1 to 0")
}

func TestDiffDuplicateLinesFallBackToLCS(t *testing.T) {
	old := lines("},},x,},y")
	upd := lines("},x,},},y,}")
	r := Diff(old, upd)
	checkCoverage(t, old, upd, r)
	assert.Equal(t, 1, r.InsertedCount)
	assert.Zero(t, r.DeletedCount)
}

func TestDiffPatienceAnchorsOnUniqueLines(t *testing.T) {
	old := []string{"func a() {", "}", "", "func b() {", "}"}
	upd := []string{"func b() {", "}", "", "func a() {", "}"}
	r := Diff(old, upd)
	checkCoverage(t, old, upd, r)
	assert.Zero(t, r.InsertedCount)
	assert.Zero(t, r.DeletedCount)
}

func TestDiffCoverageRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "b", "c", "d", "}", ""}

	gen := func() []string {
		n := rng.Intn(12)
		out := make([]string, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return out
	}

	for i := 0; i < 500; i++ {
		old, upd := gen(), gen()
		t.Run(fmt.Sprintf("case%d", i), func(t *testing.T) {
			checkCoverage(t, old, upd, Diff(old, upd))
		})
	}
}

func TestLongestIncreasing(t *testing.T) {
	got := longestIncreasing([]match{{3, 0}, {0, 1}, {1, 2}, {4, 3}, {2, 4}})
	assert.Equal(t, []match{{0, 1}, {1, 2}, {2, 4}}, got)
	assert.Nil(t, longestIncreasing(nil))
}

func TestBuildDiffLines(t *testing.T) {
	old := lines("a,b,c")
	upd := lines("c,a,d")
	r := Diff(old, upd)

	out := BuildDiffLines(r, old, upd)
	require.NotEmpty(t, out)
	last := out[len(out)-1]
	assert.Equal(t, DiffTypeSummary, last.Type)
	assert.Equal(t, Summary(r), last.Content)

	text := FormatLines(out)
	assert.Contains(t, text, "+")
	assert.Contains(t, text, "-")
}
