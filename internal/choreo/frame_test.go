package choreo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSlideOut(t *testing.T) {
	step := LineStep{
		Kind:        KindSlideOut,
		Direction:   TowardStart,
		Delay:       100 * time.Millisecond,
		Duration:    300 * time.Millisecond,
		FromOpacity: 1,
		Distance:    24,
	}

	before := Sample(step, 0)
	assert.Equal(t, 0.0, before.X)
	assert.Equal(t, 1.0, before.Opacity)
	assert.False(t, before.Done)

	after := Sample(step, time.Second)
	assert.Equal(t, -24.0, after.X)
	assert.False(t, after.Visible())
	assert.True(t, after.Done)
}

func TestSampleSlideIn(t *testing.T) {
	step := LineStep{
		Kind:      KindSlideIn,
		Direction: FromEnd,
		Duration:  400 * time.Millisecond,
		Opacity:   0.4,
		Distance:  24,
	}

	start := Sample(step, 0)
	assert.Equal(t, 24.0, start.X)
	assert.False(t, start.Visible())

	end := Sample(step, 400*time.Millisecond)
	assert.Equal(t, 0.0, end.X)
	assert.InDelta(t, 0.4, end.Opacity, 1e-9)
	assert.True(t, end.Done)
}

func TestSampleMove(t *testing.T) {
	step := LineStep{
		Kind:        KindMove,
		Duration:    500 * time.Millisecond,
		FromOpacity: 0.4,
		Opacity:     1,
		Offset:      3,
		Motion:      Arc{Bow: 0.5},
	}

	start := Sample(step, 0)
	assert.Equal(t, 3.0, start.Y)
	assert.InDelta(t, 0, start.X, 1e-9)
	assert.Equal(t, 0.4, start.Opacity)

	mid := Sample(step, 250*time.Millisecond)
	assert.InDelta(t, 1.5, mid.Y, 1e-9)
	assert.InDelta(t, 1.5, mid.X, 1e-9)

	end := Sample(step, 500*time.Millisecond)
	assert.InDelta(t, 0, end.Y, 1e-9)
	assert.InDelta(t, 1, end.Opacity, 1e-9)
}

func TestSampleStatic(t *testing.T) {
	f := Sample(LineStep{Kind: KindNone, Opacity: 0.4}, 0)
	assert.Equal(t, Frame{Opacity: 0.4, Done: true}, f)
}

func TestMotionEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "arc", "spring"} {
		t.Run(name, func(t *testing.T) {
			m, err := MotionByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name())

			p0, l0 := m.At(0)
			p1, l1 := m.At(1)
			assert.InDelta(t, 0, p0, 1e-9)
			assert.InDelta(t, 1, p1, 1e-9)
			assert.InDelta(t, 0, l0, 1e-9)
			assert.InDelta(t, 0, l1, 1e-9)
		})
	}
}

func TestSpringHeadsTowardTarget(t *testing.T) {
	s := NewSpring(12, 0.7)
	p, _ := s.At(0.25)
	assert.Greater(t, p, 0.5)
}

func TestMotionByNameUnknown(t *testing.T) {
	_, err := MotionByName("wobble")
	assert.Error(t, err)
}
