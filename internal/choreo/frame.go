package choreo

import (
	"math"
	"time"
)

// Frame is the visual state of one line at a point in time
type Frame struct {
	X, Y    float64 // Horizontal offset in slide units, vertical offset in lines
	Opacity float64
	Done    bool
}

// Visible reports whether anything of the line shows
func (f Frame) Visible() bool {
	return f.Opacity > 0
}

// progress returns how far into the step elapsed is, in [0,1]
func (s LineStep) progress(elapsed time.Duration) float64 {
	if elapsed < s.Delay {
		return 0
	}
	if s.Duration <= 0 {
		return 1
	}
	return clamp01(float64(elapsed-s.Delay) / float64(s.Duration))
}

// Sample returns the frame of a step elapsed after the plan started.
// Animations fill both ways: before its delay a step shows its first frame
// and after its end its last.
func Sample(step LineStep, elapsed time.Duration) Frame {
	p := step.progress(elapsed)
	f := Frame{Done: p >= 1}

	switch step.Kind {
	case KindSlideOut:
		e := easeIn(p)
		f.X = step.Direction.Sign() * step.Distance * e
		f.Opacity = step.FromOpacity * (1 - e)
	case KindSlideIn:
		e := easeOut(p)
		f.X = step.Direction.Sign() * step.Distance * (1 - e)
		f.Opacity = step.Opacity * e
	case KindMove:
		motion := step.Motion
		if motion == nil {
			motion = Linear{}
		}
		prog, lateral := motion.At(p)
		f.Y = step.Offset * (1 - prog)
		f.X = lateral * math.Abs(step.Offset)
		f.Opacity = step.FromOpacity + (step.Opacity-step.FromOpacity)*clamp01(prog)
	default:
		f.Opacity = step.Opacity
		f.Done = true
	}
	return f
}
