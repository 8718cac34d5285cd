package choreo

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pstuifzand/code-wave/internal/model"
)

// Surface applies plans to something the user can see.
// Its methods are called with the choreographer's lock held, in state
// order, and must not call back into the choreographer.
type Surface interface {
	Begin(plan *Plan)
	Complete(plan *Plan)
}

// Timer is a pending completion
type Timer interface {
	Stop() bool
}

// Clock schedules completions
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

const noTarget = -1

// Choreographer owns the displayed block of a deck. At most one transition is
// in flight; a request arriving meanwhile waits in a single slot where the
// latest request wins.
type Choreographer struct {
	mu      sync.Mutex
	deck    *model.Deck
	planner *Planner
	surface Surface
	clock   Clock
	logger  *zap.Logger

	current  int
	inFlight *Plan
	queued   int
	timer    Timer
	closed   bool
}

// Option configures a Choreographer
type Option func(*Choreographer)

// WithClock replaces the wall clock, mostly for tests
func WithClock(clock Clock) Option {
	return func(c *Choreographer) {
		c.clock = clock
	}
}

// WithLogger sets the logger for transition events
func WithLogger(logger *zap.Logger) Option {
	return func(c *Choreographer) {
		c.logger = logger
	}
}

// WithStart makes block i the displayed block instead of the first one
func WithStart(i int) Option {
	return func(c *Choreographer) {
		c.current = i
	}
}

// New creates a choreographer for deck showing its first block.
// The deck must have at least one block.
func New(deck *model.Deck, planner *Planner, surface Surface, opts ...Option) *Choreographer {
	c := &Choreographer{
		deck:    deck,
		planner: planner,
		surface: surface,
		clock:   wallClock{},
		logger:  zap.NewNop(),
		queued:  noTarget,
	}
	for _, opt := range opts {
		opt(c)
	}
	deck.Block(c.current)
	return c
}

// Request asks for block index to become the displayed block. Requests for
// the displayed block while idle, or for the block already being animated
// to, start nothing. An index outside the deck panics.
func (c *Choreographer) Request(index int) {
	c.deck.Block(index)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.inFlight == nil {
		if index == c.current {
			return
		}
		c.start(index)
		return
	}

	if index == c.inFlight.To {
		if c.queued != noTarget {
			c.logger.Debug("Dropping queued target", zap.Int("queued", c.queued))
		}
		c.queued = noTarget
		return
	}

	if c.queued != noTarget {
		c.logger.Debug("Superseding queued target", zap.Int("old", c.queued), zap.Int("new", index))
	}
	c.queued = index
}

// start plans and begins the transition to index. Caller holds the lock.
func (c *Choreographer) start(index int) {
	plan := c.planner.Plan(c.deck.Block(c.current), c.deck.Block(index))
	c.inFlight = plan

	c.logger.Debug("Transition started",
		zap.Int("from", plan.From),
		zap.Int("to", plan.To),
		zap.Bool("forward", plan.Forward),
		zap.Int("inserted", plan.Diff.InsertedCount),
		zap.Int("deleted", plan.Diff.DeletedCount),
		zap.Int("moved", plan.Diff.MovedCount()),
		zap.Duration("total", plan.Total))

	c.surface.Begin(plan)
	c.timer = c.clock.AfterFunc(plan.Total, func() {
		c.finish(plan)
	})
}

// finish makes plan's target current and chains into the queued target
func (c *Choreographer) finish(plan *Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.inFlight != plan {
		return
	}

	c.current = plan.To
	c.inFlight = nil
	c.timer = nil
	c.surface.Complete(plan)
	c.logger.Debug("Transition finished", zap.Int("current", c.current))

	if c.queued != noTarget {
		next := c.queued
		c.queued = noTarget
		if next != c.current {
			c.start(next)
		}
	}
}

// Current returns the displayed block
func (c *Choreographer) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// InFlight returns the block being animated to, if any
func (c *Choreographer) InFlight() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight == nil {
		return noTarget, false
	}
	return c.inFlight.To, true
}

// Queued returns the block waiting for the current transition, if any
func (c *Choreographer) Queued() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queued, c.queued != noTarget
}

// Target returns the block the choreographer will settle on once all
// pending work is done
func (c *Choreographer) Target() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.queued != noTarget:
		return c.queued
	case c.inFlight != nil:
		return c.inFlight.To
	default:
		return c.current
	}
}

// Close stops a pending completion. Later requests are ignored.
func (c *Choreographer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
