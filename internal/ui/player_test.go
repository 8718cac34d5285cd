package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/highlight"
	"github.com/pstuifzand/code-wave/internal/interest"
	"github.com/pstuifzand/code-wave/internal/model"
	"github.com/pstuifzand/code-wave/internal/theme"
	"github.com/pstuifzand/code-wave/internal/viewport"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFromTcell(sim, theme.Dark())
	if err != nil {
		t.Fatalf("NewScreenFromTcell: %v", err)
	}
	t.Cleanup(func() { screen.Close() })
	sim.SetSize(w, h)
	screen.Size()
	return screen, sim
}

func rowText(sim tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func screenText(sim tcell.SimulationScreen, w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(sim, y, w)
	}
	return rows
}

func testDeck() *model.Deck {
	deck := model.NewDeck("test",
		model.NewBlock("", "alpha\nbeta"),
		model.NewBlock("", "alpha\nbeta\ngamma"),
	)
	interest.Annotate(deck)
	return deck
}

func newTestPlayer(deck *model.Deck) *Player {
	pane := NewCodePane(highlight.New("none"), 0.4)
	return NewPlayer(deck, pane, NewCamera(60), 0)
}

func TestPlayerRendersPlacedBlock(t *testing.T) {
	const w, h = 30, 10
	screen, sim := newSimScreen(t, w, h)
	deck := testDeck()
	player := newTestPlayer(deck)
	player.Resize(w, h)

	player.Render(screen, Rect{X: 0, Y: 0, W: w, H: h})

	block := deck.Block(0)
	place := viewport.Place(viewport.Measure(block), block.Interest, w-gutterWidth, h)
	got := rowText(sim, place.Y, w)
	if !strings.HasSuffix(got, "alpha") || !strings.Contains(got, "▌") {
		t.Errorf("row %d = %q, want focus marker and alpha", place.Y, got)
	}
	if got := rowText(sim, place.Y+1, w); !strings.HasSuffix(got, "beta") {
		t.Errorf("row %d = %q, want beta", place.Y+1, got)
	}
}

func TestPlayerTransition(t *testing.T) {
	const w, h = 30, 10
	screen, sim := newSimScreen(t, w, h)
	deck := testDeck()
	player := newTestPlayer(deck)
	base := time.Unix(1000, 0)
	now := base
	player.now = func() time.Time { return now }
	player.Resize(w, h)

	changes := 0
	player.OnChange = func() { changes++ }

	plan := choreo.NewPlanner(choreo.DefaultTiming(), nil).Plan(deck.Block(0), deck.Block(1))
	player.Begin(plan)
	if !player.Animating() {
		t.Fatal("player should be animating after Begin")
	}

	// Before the insert phase the new line is invisible
	screen.Clear()
	player.Render(screen, Rect{W: w, H: h})
	for _, row := range screenText(sim, w, h) {
		if strings.Contains(row, "gamma") {
			t.Fatalf("gamma drawn before its phase: %q", row)
		}
	}

	now = base.Add(plan.Total)
	screen.Clear()
	player.Render(screen, Rect{W: w, H: h})
	found := false
	for _, row := range screenText(sim, w, h) {
		if strings.HasSuffix(row, "gamma") {
			found = true
		}
	}
	if !found {
		t.Errorf("gamma not drawn at end of transition:\n%s", strings.Join(screenText(sim, w, h), "\n"))
	}

	player.Complete(plan)
	if player.Animating() {
		t.Error("player still animating after Complete")
	}
	if player.Current() != 1 {
		t.Errorf("Current() = %d, want 1", player.Current())
	}
	if player.LastPlan() != plan {
		t.Error("LastPlan() should return the completed plan")
	}
	if changes != 2 {
		t.Errorf("OnChange called %d times, want 2", changes)
	}
	if player.Fit().Scale != 1 {
		t.Errorf("Fit().Scale = %v, want 1 for a small block", player.Fit().Scale)
	}
}

func TestPlayerCameraSettles(t *testing.T) {
	deck := model.NewDeck("",
		model.NewBlock("", "one"),
		model.NewBlock("", "one\ntwo\nthree\nfour\nfive\nsix"),
	)
	interest.Annotate(deck)
	player := newTestPlayer(deck)
	player.Resize(20, 20)

	plan := choreo.NewPlanner(choreo.DefaultTiming(), nil).Plan(deck.Block(0), deck.Block(1))
	player.Begin(plan)
	player.Complete(plan)

	moving := true
	for i := 0; i < 600 && moving; i++ {
		moving = player.Tick()
	}
	if moving {
		t.Fatal("camera did not settle")
	}

	block := deck.Block(1)
	want := viewport.Place(viewport.Measure(block), block.Interest, 20-gutterWidth, 20)
	x, y := player.camera.Position()
	if x != want.X || y != want.Y {
		t.Errorf("camera at %d,%d, want %d,%d", x, y, want.X, want.Y)
	}
}

func TestCodePaneClipsToArea(t *testing.T) {
	screen, sim := newSimScreen(t, 20, 5)
	pane := NewCodePane(highlight.New("none"), 0.4)
	block := model.NewBlock("", "0123456789")
	block.Interest = model.FullInterest(1)

	pane.DrawBlock(screen, Rect{X: 0, Y: 0, W: 8, H: 5}, 0, 1, block)

	if got := rowText(sim, 1, 20); got != "▌ 012345" {
		t.Errorf("clipped row = %q", got)
	}
	pane.DrawBlock(screen, Rect{X: 0, Y: 0, W: 8, H: 5}, 0, 7, block)
	if got := rowText(sim, 4, 20); got != "" {
		t.Errorf("row outside area drawn: %q", got)
	}
}
