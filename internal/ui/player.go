package ui

import (
	"sync"
	"time"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/model"
	"github.com/pstuifzand/code-wave/internal/viewport"
)

// Player shows the current block of a deck and plays the transitions the
// choreographer hands it. It implements choreo.Surface.
type Player struct {
	mu sync.Mutex

	deck   *model.Deck
	pane   *CodePane
	camera *Camera
	now    func() time.Time

	current int
	plan    *choreo.Plan
	started time.Time
	last    *choreo.Plan

	width, height int
	fit           viewport.Transform

	// OnChange is called after Begin and Complete, from the choreographer's
	// goroutine. The app uses it to wake its event loop.
	OnChange func()
}

// NewPlayer creates a player resting on block start
func NewPlayer(deck *model.Deck, pane *CodePane, camera *Camera, start int) *Player {
	return &Player{
		deck:    deck,
		pane:    pane,
		camera:  camera,
		now:     time.Now,
		current: start,
	}
}

// Begin starts drawing plan
func (p *Player) Begin(plan *choreo.Plan) {
	p.mu.Lock()
	p.plan = plan
	p.started = p.now()
	p.mu.Unlock()
	p.changed()
}

// Complete settles on the destination block of plan and refits it
func (p *Player) Complete(plan *choreo.Plan) {
	p.mu.Lock()
	if p.plan == plan {
		p.plan = nil
	}
	p.last = plan
	p.current = plan.To
	p.refit(false)
	p.mu.Unlock()
	p.changed()
}

func (p *Player) changed() {
	if p.OnChange != nil {
		p.OnChange()
	}
}

// Resize sets the size of the code area and refits without easing
func (p *Player) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
	p.refit(true)
}

func (p *Player) refit(jump bool) {
	if p.width <= 0 || p.height <= 0 {
		return
	}
	block := p.deck.Block(p.current)
	m := viewport.Measure(block)
	codeWidth := max(p.width-gutterWidth, 0)

	p.fit = viewport.Fit(m, block.Interest, float64(codeWidth), float64(p.height))
	place := viewport.Place(m, block.Interest, codeWidth, p.height)
	if jump {
		p.camera.Jump(place.X, place.Y)
	} else {
		p.camera.SetTarget(place.X, place.Y)
	}
}

// Tick advances the camera one frame and reports whether anything is still
// moving
func (p *Player) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.camera.Update()
	return p.plan != nil || !p.camera.Settled()
}

// Render draws the current state into area
func (p *Player) Render(screen *Screen, area Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dx, dy := p.camera.Position()
	x, y := area.X+dx, area.Y+dy

	if p.plan != nil {
		elapsed := p.now().Sub(p.started)
		from := p.deck.Block(p.plan.From)
		to := p.deck.Block(p.plan.To)
		p.pane.DrawTransition(screen, area, x, y, p.plan, from, to, elapsed)
		return
	}
	p.pane.DrawBlock(screen, area, x, y, p.deck.Block(p.current))
}

// Current returns the index of the block shown at rest
func (p *Player) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Animating reports whether a transition is being drawn
func (p *Player) Animating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan != nil
}

// LastPlan returns the most recently completed transition, or nil
func (p *Player) LastPlan() *choreo.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Fit returns the transform computed for the current block
func (p *Player) Fit() viewport.Transform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fit
}
