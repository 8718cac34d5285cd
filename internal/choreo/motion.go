package choreo

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Motion is the path a moved line follows. At maps normalized time t in
// [0,1] to progress along the path (0 at the old row, 1 at the new row) and
// a lateral displacement per line travelled.
type Motion interface {
	Name() string
	At(t float64) (progress, lateral float64)
}

// Linear moves straight to the new row with ease-in-out timing
type Linear struct{}

func (Linear) Name() string { return "linear" }

func (Linear) At(t float64) (float64, float64) {
	return easeInOut(clamp01(t)), 0
}

// Arc bows sideways while moving, so lines travelling through each other
// stay readable
type Arc struct {
	Bow float64
}

func (Arc) Name() string { return "arc" }

func (a Arc) At(t float64) (float64, float64) {
	t = clamp01(t)
	return easeInOut(t), a.Bow * math.Sin(math.Pi*t)
}

// Spring follows the response curve of a damped spring
type Spring struct {
	samples []float64
}

const springSamples = 120

// NewSpring samples a harmonica spring released from 0 toward 1 over one
// unit of normalized time
func NewSpring(frequency, damping float64) *Spring {
	spring := harmonica.NewSpring(harmonica.FPS(springSamples), frequency, damping)
	samples := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		samples[i] = pos
	}
	samples[springSamples] = 1
	return &Spring{samples: samples}
}

func (*Spring) Name() string { return "spring" }

func (s *Spring) At(t float64) (float64, float64) {
	t = clamp01(t)
	x := t * springSamples
	i := int(x)
	if i >= springSamples {
		return 1, 0
	}
	frac := x - float64(i)
	return s.samples[i] + (s.samples[i+1]-s.samples[i])*frac, 0
}

// MotionByName returns the motion registered under name
func MotionByName(name string) (Motion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear{}, nil
	case "arc":
		return Arc{Bow: 0.5}, nil
	case "spring":
		return NewSpring(12, 0.7), nil
	default:
		return nil, fmt.Errorf("unknown motion style %q", name)
	}
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func easeIn(t float64) float64 {
	return t * t * t
}

func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
