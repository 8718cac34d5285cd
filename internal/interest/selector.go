// Package interest decides which lines of a code block deserve the reader's
// attention when the block becomes current.
package interest

import (
	"github.com/pstuifzand/code-wave/internal/diff"
	"github.com/pstuifzand/code-wave/internal/model"
)

type options struct {
	includeDisplaced bool
}

// Option configures Select
type Option func(*options)

// IncludeDisplaced also treats lines found by move detection as interesting.
// By default only pure insertions count as new content.
func IncludeDisplaced() Option {
	return func(o *options) {
		o.includeDisplaced = true
	}
}

// Select returns the lines of current that are of interest.
// Explicit flags always win. Without a previous block every line is of
// interest; otherwise the lines inserted relative to previous are.
// previous is nil for the first block of a deck.
func Select(current, previous []string, explicit []int, opts ...Option) model.InterestSet {
	if len(explicit) > 0 {
		return model.NewInterestSet(explicit...)
	}

	if previous == nil {
		return model.FullInterest(len(current))
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var indices []int
	for _, p := range diff.Diff(previous, current).Pairings {
		if p.IsInsert() || (o.includeDisplaced && p.Displaced) {
			indices = append(indices, p.NewIndex)
		}
	}
	return model.NewInterestSet(indices...)
}

// Annotate attaches an interest set to every block of the deck, each one
// relative to the block immediately before it
func Annotate(deck *model.Deck, opts ...Option) {
	var previous []string
	for _, block := range deck.Blocks {
		current := block.Texts()
		block.Interest = Select(current, previous, block.Explicit(), opts...)
		previous = current
	}
}
