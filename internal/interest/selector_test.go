package interest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pstuifzand/code-wave/internal/model"
)

func TestSelectFirstBlockIsAllLines(t *testing.T) {
	got := Select([]string{"a", "b", "c"}, nil, nil)
	assert.Equal(t, []int{0, 1, 2}, got.Indices())
}

func TestSelectDerivedFromInsertions(t *testing.T) {
	got := Select([]string{"a", "b", "c"}, []string{"a", "b"}, nil)
	assert.Equal(t, []int{2}, got.Indices())
}

func TestSelectExplicitWins(t *testing.T) {
	got := Select([]string{"a", "b", "c"}, []string{"a"}, []int{2, 0, 2})
	assert.Equal(t, []int{0, 2}, got.Indices())

	got = Select([]string{"a", "b"}, nil, []int{1})
	assert.Equal(t, []int{1}, got.Indices())
}

func TestSelectIgnoresMovedLines(t *testing.T) {
	got := Select([]string{"b", "a", "c"}, []string{"a", "b"}, nil)
	assert.Equal(t, []int{2}, got.Indices())
}

func TestSelectIncludeDisplaced(t *testing.T) {
	previous := []string{"x", "a", "b"}
	current := []string{"a", "b", "x", "y"}

	assert.Equal(t, []int{3}, Select(current, previous, nil).Indices())
	assert.Equal(t, []int{2, 3}, Select(current, previous, nil, IncludeDisplaced()).Indices())
}

func TestSelectIdenticalBlockHasNoInterest(t *testing.T) {
	got := Select([]string{"a"}, []string{"a"}, nil)
	assert.True(t, got.IsEmpty())
}

func TestAnnotate(t *testing.T) {
	first := model.NewBlock("go", "a\nb")
	second := model.NewBlock("go", "a\nb\nc")
	third := model.NewBlock("go", "a\nc")
	third.Lines[0].Highlight = true
	deck := model.NewDeck("t", first, second, third)

	Annotate(deck)

	assert.Equal(t, []int{0, 1}, first.Interest.Indices())
	assert.Equal(t, []int{2}, second.Interest.Indices())
	assert.Equal(t, []int{0}, third.Interest.Indices())
}
