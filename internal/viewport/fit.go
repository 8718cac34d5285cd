// Package viewport frames a code block inside a fixed-size container.
package viewport

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pstuifzand/code-wave/internal/model"
)

// TabWidth is the number of cells a tab expands to
const TabWidth = 4

// Metrics is the rendered size of a block
type Metrics struct {
	Width     float64
	Height    float64
	LineCount int
}

// Transform is applied to the block's container
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// ExpandTabs replaces tabs so that cell widths match what is drawn
func ExpandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}

// Measure returns the size of a block in terminal cells, one row per line
func Measure(block *model.CodeBlock) Metrics {
	width := 0
	for _, l := range block.Lines {
		if w := runewidth.StringWidth(ExpandTabs(l.Text)); w > width {
			width = w
		}
	}
	return Metrics{
		Width:     float64(width),
		Height:    float64(block.Len()),
		LineCount: block.Len(),
	}
}

// focus returns the normalized vertical center of the interest region and
// the fraction of the block height it spans
func focus(m Metrics, set model.InterestSet) (center, fraction float64) {
	if m.LineCount <= 1 || set.IsEmpty() {
		return 0.5, 1
	}
	last := m.LineCount - 1
	lo, hi := max(set.Min(), 0), min(set.Max(), last)
	if lo > hi || (lo == 0 && hi == last) {
		return 0.5, 1
	}

	center = float64(lo+hi) / 2 / float64(last)
	fraction = float64(hi-lo) / float64(last)
	// A single interesting line still occupies one line of height
	fraction = math.Max(fraction, 1/float64(m.LineCount))
	return center, math.Min(fraction, 1)
}

// Fit scales the block to the container width and to the height of its
// interest region, never upscaling, and positions it so the interest
// midpoint lands on the vertical center of the container.
func Fit(m Metrics, set model.InterestSet, containerWidth, containerHeight float64) Transform {
	center, fraction := focus(m, set)

	scale := 1.0
	if m.Width > 0 {
		scale = math.Min(scale, containerWidth/m.Width)
	}
	if m.Height > 0 {
		scale = math.Min(scale, containerHeight/(fraction*m.Height))
	}

	return Transform{
		Scale:      scale,
		TranslateX: (containerWidth - m.Width*scale) / 2,
		TranslateY: containerHeight/2 - center*m.Height*scale,
	}
}

// Placement is where a block goes in a container that cannot scale text
type Placement struct {
	X, Y int
}

// Place is Fit at native size, rounded to whole cells. Blocks wider than the
// container are left aligned.
func Place(m Metrics, set model.InterestSet, containerWidth, containerHeight int) Placement {
	center, _ := focus(m, set)
	x := max(0, (containerWidth-int(m.Width))/2)
	y := float64(containerHeight)/2 - center*m.Height
	return Placement{X: x, Y: int(math.Round(y))}
}
