package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const settleEpsilon = 0.01

// Camera eases the code pane origin toward its fitted position
type Camera struct {
	spring harmonica.Spring
	x, y   float64
	vx, vy float64
	tx, ty float64
}

// NewCamera creates a camera updated fps times per second
func NewCamera(fps int) *Camera {
	return &Camera{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 8.0, 1.0),
	}
}

// SetTarget moves the point the camera eases toward
func (c *Camera) SetTarget(x, y int) {
	c.tx, c.ty = float64(x), float64(y)
}

// Jump places the camera on x, y immediately
func (c *Camera) Jump(x, y int) {
	c.SetTarget(x, y)
	c.x, c.y = c.tx, c.ty
	c.vx, c.vy = 0, 0
}

// Update advances the camera one frame
func (c *Camera) Update() {
	if c.Settled() {
		c.x, c.y = c.tx, c.ty
		c.vx, c.vy = 0, 0
		return
	}
	c.x, c.vx = c.spring.Update(c.x, c.vx, c.tx)
	c.y, c.vy = c.spring.Update(c.y, c.vy, c.ty)
}

// Settled reports whether the camera rests on its target
func (c *Camera) Settled() bool {
	return math.Abs(c.x-c.tx) < settleEpsilon && math.Abs(c.y-c.ty) < settleEpsilon &&
		math.Abs(c.vx) < settleEpsilon && math.Abs(c.vy) < settleEpsilon
}

// Position returns the current origin rounded to cells
func (c *Camera) Position() (int, int) {
	return int(math.Round(c.x)), int(math.Round(c.y))
}
