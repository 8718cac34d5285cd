// Package choreo plans and sequences the animated transition between two
// code blocks: deleted lines slide out, surviving lines move into place and
// inserted lines slide in, as three phases one after the other.
package choreo

import (
	"time"

	"github.com/pstuifzand/code-wave/internal/diff"
	"github.com/pstuifzand/code-wave/internal/model"
)

// Kind is the animation assigned to one line
type Kind int

const (
	KindNone Kind = iota
	KindSlideOut
	KindSlideIn
	KindMove
)

func (k Kind) String() string {
	switch k {
	case KindSlideOut:
		return "slide-out"
	case KindSlideIn:
		return "slide-in"
	case KindMove:
		return "move"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Direction is where a sliding line exits to or enters from
type Direction int

const (
	DirectionNone Direction = iota
	TowardStart
	TowardEnd
	FromStart
	FromEnd
)

func (d Direction) String() string {
	switch d {
	case TowardStart:
		return "toward-start"
	case TowardEnd:
		return "toward-end"
	case FromStart:
		return "from-start"
	case FromEnd:
		return "from-end"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Sign is -1 for the start side, +1 for the end side and 0 otherwise
func (d Direction) Sign() float64 {
	switch d {
	case TowardStart, FromStart:
		return -1
	case TowardEnd, FromEnd:
		return 1
	default:
		return 0
	}
}

// Timing holds the phase durations and visual constants of a transition
type Timing struct {
	Remove  time.Duration
	Move    time.Duration
	Insert  time.Duration
	Stagger time.Duration

	DimOpacity    float64 // Opacity of lines outside the interest set
	SlideDistance float64 // How far sliding lines travel
}

// DefaultTiming returns the timing used by the browser component
func DefaultTiming() Timing {
	return Timing{
		Remove:        300 * time.Millisecond,
		Move:          500 * time.Millisecond,
		Insert:        400 * time.Millisecond,
		Stagger:       10 * time.Millisecond,
		DimOpacity:    0.4,
		SlideDistance: 24,
	}
}

// LineStep is the animation of a single pairing
type LineStep struct {
	Pairing   diff.Pairing
	Kind      Kind
	Direction Direction
	Delay     time.Duration
	Duration  time.Duration

	FromOpacity float64 // Opacity of the old line, when there is one
	Opacity     float64 // Opacity the line ends at
	Offset      float64 // Vertical start offset of a move, in lines (old - new)
	Distance    float64 // Horizontal travel of a slide
	Motion      Motion  // Path of a move
}

// End returns when the step finishes, relative to the start of the plan
func (s LineStep) End() time.Duration {
	return s.Delay + s.Duration
}

// Plan is the full transition from one block to another
type Plan struct {
	From, To int
	Forward  bool
	Steps    []LineStep
	Total    time.Duration
	Diff     *diff.Result
	Interest model.InterestSet
}

// Planner turns a diff between two blocks into a Plan
type Planner struct {
	Timing Timing
	Motion Motion
}

// NewPlanner creates a planner. A nil motion falls back to Linear.
func NewPlanner(timing Timing, motion Motion) *Planner {
	if motion == nil {
		motion = Linear{}
	}
	return &Planner{Timing: timing, Motion: motion}
}

func (p *Planner) opacity(set model.InterestSet, i int) float64 {
	if set.Contains(i) {
		return 1
	}
	return p.Timing.DimOpacity
}

// Plan builds the transition from the displayed block to the requested one
func (p *Planner) Plan(from, to *model.CodeBlock) *Plan {
	t := p.Timing
	forward := to.Index > from.Index
	result := diff.Diff(from.Texts(), to.Texts())

	var removePhase, movePhase, insertPhase time.Duration
	if result.HasDeletions() {
		removePhase = t.Remove
	}
	if result.HasMoves() {
		movePhase = t.Move
	}
	if result.HasInsertions() {
		insertPhase = t.Insert
	}

	removeDelay := time.Duration(0)
	moveDelay := removePhase
	insertDelay := removePhase + movePhase

	exit, enter := TowardEnd, FromStart
	if forward {
		exit, enter = TowardStart, FromEnd
	}

	plan := &Plan{
		From:     from.Index,
		To:       to.Index,
		Forward:  forward,
		Steps:    make([]LineStep, 0, len(result.Pairings)),
		Diff:     result,
		Interest: to.Interest,
	}

	for _, pr := range result.Pairings {
		step := LineStep{Pairing: pr}
		switch {
		case pr.IsDelete():
			step.Kind = KindSlideOut
			step.Direction = exit
			step.Delay = removeDelay
			step.Duration = t.Remove
			step.FromOpacity = p.opacity(from.Interest, pr.OldIndex)
			step.Distance = t.SlideDistance
			removeDelay += t.Stagger
		case pr.IsInsert():
			step.Kind = KindSlideIn
			step.Direction = enter
			step.Delay = insertDelay
			step.Duration = t.Insert
			step.Opacity = p.opacity(to.Interest, pr.NewIndex)
			step.Distance = t.SlideDistance
			insertDelay += t.Stagger
		case pr.Moved:
			step.Kind = KindMove
			step.Delay = moveDelay
			step.Duration = t.Move
			step.FromOpacity = p.opacity(from.Interest, pr.OldIndex)
			step.Opacity = p.opacity(to.Interest, pr.NewIndex)
			step.Offset = float64(pr.OldIndex - pr.NewIndex)
			step.Motion = p.Motion
		default:
			step.FromOpacity = p.opacity(from.Interest, pr.OldIndex)
			step.Opacity = p.opacity(to.Interest, pr.NewIndex)
		}
		plan.Steps = append(plan.Steps, step)
	}

	plan.Total = insertDelay + insertPhase
	for _, s := range plan.Steps {
		if s.End() > plan.Total {
			plan.Total = s.End()
		}
	}

	return plan
}

// Counts returns how many steps of each kind the plan has
func (p *Plan) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, s := range p.Steps {
		counts[s.Kind]++
	}
	return counts
}
