// Package app runs the interactive player: it wires the choreographer to the
// screen, the keyboard and the control socket.
package app

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/config"
	"github.com/pstuifzand/code-wave/internal/highlight"
	"github.com/pstuifzand/code-wave/internal/history"
	"github.com/pstuifzand/code-wave/internal/model"
	"github.com/pstuifzand/code-wave/internal/socket"
	"github.com/pstuifzand/code-wave/internal/theme"
	"github.com/pstuifzand/code-wave/internal/ui"
	"github.com/pstuifzand/code-wave/internal/watch"
)

const (
	statusTimeout = 3 * time.Second
	reloadDelay   = 150 * time.Millisecond
)

// Options configures an App
type Options struct {
	Deck   *model.Deck // Interest sets must already be attached
	Path   string      // Shown in the title bar when the deck has no title
	Config *config.Config
	Theme  *theme.Theme
	Logger *zap.Logger
	Start  int

	Motion  choreo.Motion
	Clock   choreo.Clock    // Nil for the wall clock
	History *history.Manager // Nil keeps search history in memory
	Socket  bool             // Listen for step commands from other processes

	// Reload reads the deck again. With Watch set it runs whenever the
	// file at Path changes.
	Reload func() (*model.Deck, error)
	Watch  bool
}

// App is the main application controller
type App struct {
	screen *ui.Screen
	deck   *model.Deck
	path   string
	logger *zap.Logger
	fps    int

	pane    *ui.CodePane
	planner *choreo.Planner
	clock   choreo.Clock
	history *history.Manager
	reload  func() (*model.Deck, error)

	choreo  *choreo.Choreographer
	player  *ui.Player
	search  *ui.StepSearch
	command *ui.CommandMode
	help    *ui.HelpScreen
	pairing *ui.PairingView
	card    *ui.TitleCard

	keybindings []KeyBinding
	server      *socket.Server
	watcher     *watch.Watcher

	statusMsg  string
	statusTime time.Time
	quit       bool
	done       chan struct{}
}

// NewApp creates an App on the terminal
func NewApp(opts Options) (*App, error) {
	screen, err := ui.NewScreenWithTheme(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	a, err := newApp(screen, opts)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return a, nil
}

func newApp(screen *ui.Screen, opts Options) (*App, error) {
	if opts.Deck == nil || opts.Deck.Len() == 0 {
		return nil, fmt.Errorf("deck has no code blocks")
	}
	if opts.Start < 0 || opts.Start >= opts.Deck.Len() {
		return nil, fmt.Errorf("start step %d out of range 1..%d", opts.Start+1, opts.Deck.Len())
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if screen.Theme == nil {
		screen.Theme = theme.Dark()
	}
	style := cfg.Highlight
	if style == "" {
		style = screen.Theme.Highlight
	}
	timing := cfg.ChoreoTiming()

	a := &App{
		screen:  screen,
		path:    opts.Path,
		logger:  logger,
		fps:     max(cfg.FPS, 1),
		pane:    ui.NewCodePane(highlight.New(style), timing.DimOpacity),
		planner: choreo.NewPlanner(timing, opts.Motion),
		clock:   opts.Clock,
		history: opts.History,
		reload:  opts.Reload,
		command: ui.NewCommandMode(),
		help:    ui.NewHelpScreen(),
		pairing: ui.NewPairingView(),
		card:    ui.NewTitleCard(opts.Deck),
		done:    make(chan struct{}),
	}
	a.load(opts.Deck, opts.Start)
	a.keybindings = a.InitializeKeybindings()
	a.help.SetKeybindings(a.helpBindings())

	if opts.Socket {
		server, err := socket.NewServer(os.Getpid(), logger.Named("socket"))
		if err != nil {
			// The player works without remote control
			logger.Warn("socket server unavailable", zap.Error(err))
		} else {
			a.server = server
		}
	}

	if opts.Watch && opts.Reload != nil && opts.Path != "" {
		watcher, err := watch.New(opts.Path, reloadDelay)
		if err != nil {
			logger.Warn("deck watcher unavailable", zap.Error(err))
		} else {
			a.watcher = watcher
		}
	}

	a.layout()
	return a, nil
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-a.done:
				return
			}
		}
	}()

	var messages <-chan socket.Message
	if a.server != nil {
		a.server.Start()
		messages = a.server.Messages()
		a.logger.Info("listening", zap.String("socket", a.server.SocketPath()))
	}

	var changes <-chan struct{}
	var watchErrors <-chan error
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.logger.Warn("deck watcher unavailable", zap.Error(err))
		} else {
			changes, watchErrors = a.watcher.Changes(), a.watcher.Errors()
			a.logger.Info("watching deck", zap.String("path", a.watcher.Path()))
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-eventChan:
			a.handleRawEvent(ev)
		case msg := <-messages:
			a.handleSocketMessage(msg)
		case <-changes:
			a.Reload()
			a.render()
		case err := <-watchErrors:
			a.logger.Warn("deck watcher error", zap.Error(err))
		case <-ticker.C:
			a.player.Tick()
			a.render()
		}
	}
	return nil
}

// Close stops the choreographer and the socket server and restores the
// terminal
func (a *App) Close() error {
	select {
	case <-a.done:
		return nil
	default:
		close(a.done)
	}
	a.choreo.Close()
	if a.server != nil {
		a.server.Stop()
	}
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Debug("deck watcher stop", zap.Error(err))
		}
	}
	return a.screen.Close()
}

// load builds the player and the choreographer for deck, opening on block
// start
func (a *App) load(deck *model.Deck, start int) {
	player := ui.NewPlayer(deck, a.pane, ui.NewCamera(a.fps), start)
	player.OnChange = func() {
		// The loop redraws on every tick; this only shortens the wait
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}

	opts := []choreo.Option{choreo.WithLogger(a.logger.Named("choreo")), choreo.WithStart(start)}
	if a.clock != nil {
		opts = append(opts, choreo.WithClock(a.clock))
	}

	a.deck = deck
	a.player = player
	a.choreo = choreo.New(deck, a.planner, player, opts...)
	a.search = ui.NewStepSearch(deck, a.history)
}

// Reload reads the deck again and reopens it on the current block, or on
// the last one when the deck got shorter. A deck that fails to load leaves
// the player as it was.
func (a *App) Reload() bool {
	if a.reload == nil {
		return false
	}
	deck, err := a.reload()
	if err == nil && deck.Len() == 0 {
		err = fmt.Errorf("deck has no code blocks")
	}
	if err != nil {
		a.logger.Warn("reload failed", zap.Error(err))
		a.SetStatus("Reload failed: " + err.Error())
		return false
	}

	start := min(a.choreo.Current(), deck.Len()-1)
	a.choreo.Close()
	a.pairing.Hide()
	a.pane.Reset()
	a.load(deck, start)
	a.layout()

	a.logger.Info("deck reloaded", zap.Int("blocks", deck.Len()), zap.Int("step", start))
	a.SetStatus(fmt.Sprintf("Reloaded %d steps", deck.Len()))
	return true
}

func (a *App) reloadCommand() {
	if a.reload == nil {
		a.SetStatus("Deck was not loaded from a file")
		return
	}
	a.Reload()
}

// Rows of the fixed screen areas
func (a *App) captionRows() int {
	return min(4, max(1, a.screen.GetHeight()/5))
}

func (a *App) codeArea() ui.Rect {
	width, height := a.screen.GetWidth(), a.screen.GetHeight()
	// Title bar, blank row above the caption, caption, status line
	h := max(height-3-a.captionRows(), 0)
	return ui.Rect{X: 0, Y: 1, W: width, H: h}
}

func (a *App) layout() {
	a.screen.Size()
	area := a.codeArea()
	a.player.Resize(area.W, area.H)
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.GetWidth(), a.screen.GetHeight()

	if a.card.IsVisible() {
		a.card.Render(a.screen)
		a.help.Render(a.screen)
		a.screen.Show()
		return
	}

	shown := a.shownStep()

	// Title bar
	title := a.deck.Title
	if title == "" {
		title = a.path
	}
	a.screen.Fill(ui.Rect{W: width, H: 1}, a.screen.TitleStyle())
	counter := fmt.Sprintf("%d/%d", shown+1, a.deck.Len())
	title = ui.TruncateToWidthWithEllipsis(title, max(width-ui.StringWidth(counter)-3, 0))
	a.screen.DrawString(1, 0, title, a.screen.TitleStyle())
	a.screen.DrawString(width-ui.StringWidth(counter)-1, 0, counter, a.screen.TitleStyle())

	area := a.codeArea()
	a.player.Render(a.screen, area)

	// Caption of the block being shown or moved to
	captionY := area.Y + area.H + 1
	caption := strings.Join(strings.Fields(a.deck.Block(shown).Caption), " ")
	lines := ui.WrapText(caption, max(width-4, 1))
	for i := 0; i < len(lines) && i < a.captionRows(); i++ {
		a.screen.DrawStringLimited(2, captionY+i, lines[i], width-4, a.screen.CaptionStyle())
	}

	switch {
	case a.command.IsActive():
		a.command.Render(a.screen, height-1)
	case a.search.IsActive():
		a.search.Render(a.screen, height-1)
	default:
		a.renderStatus(height - 1)
	}

	a.pairing.Render(a.screen)
	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(y int) {
	mode := " PLAY "
	if a.player.Animating() {
		mode = " MOVE "
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())

	// The terminal cannot shrink text; say how far the block overflows
	width := a.screen.GetWidth()
	if hint := fitHint(a.player.Fit().Scale); hint != "" {
		width -= ui.StringWidth(hint) + 1
		a.screen.DrawString(width, y, hint, a.screen.StatusMessageStyle())
	}
	if a.statusMsg != "" && time.Since(a.statusTime) <= statusTimeout {
		a.screen.DrawStringLimited(x+1, y, a.statusMsg, width-x-2, a.screen.StatusMessageStyle())
	}
}

// fitHint names the zoom the code would need to fit the pane, or nothing
// when it fits at native size
func fitHint(scale float64) string {
	if scale >= 1 || scale <= 0 {
		return ""
	}
	return fmt.Sprintf("fit %d%%", int(math.Round(scale*100)))
}

// shownStep is the block whose caption and counter are displayed: the
// destination while a transition runs
func (a *App) shownStep() int {
	if to, ok := a.choreo.InFlight(); ok {
		return to
	}
	return a.choreo.Current()
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()
		a.render()
	case *tcell.EventInterrupt:
		a.render()
	case *tcell.EventKey:
		a.handleKey(ev)
		a.render()
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		a.quit = true
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q' {
			a.help.Toggle()
		}
		return
	}

	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.search.IsActive() {
		if target, ok := a.search.HandleKey(ev); ok {
			a.GoTo(target)
		}
		return
	}

	if a.pairing.IsVisible() {
		a.pairing.HandleKey(ev)
		return
	}

	if a.card.IsVisible() {
		switch ev.Rune() {
		case 'q':
			a.quit = true
		case '?':
			a.help.Toggle()
		default:
			a.card.Hide()
		}
		return
	}

	if kb := a.lookup(ev); kb != nil {
		kb.Handler(a)
	}
}

// handleCommand processes a command from command mode. A bare number jumps
// to that step, counting from 1.
func (a *App) handleCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	if n, err := strconv.Atoi(parts[0]); err == nil {
		if !a.GoTo(n - 1) {
			a.SetStatus(fmt.Sprintf("No step %d", n))
		}
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.quit = true
	case "first":
		a.GoTo(0)
	case "last":
		a.GoTo(a.deck.Len() - 1)
	case "pairs":
		a.TogglePairing()
	case "title":
		a.card.Show()
	case "reload":
		a.reloadCommand()
	case "help":
		a.help.Toggle()
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

// GoTo requests a transition to block i
func (a *App) GoTo(i int) bool {
	if i < 0 || i >= a.deck.Len() {
		return false
	}
	a.card.Hide()
	a.pairing.Hide()
	a.choreo.Request(i)
	a.logger.Debug("step requested", zap.Int("target", i))
	return true
}

// Next moves one step past the most recently requested block
func (a *App) Next() bool {
	if !a.GoTo(a.choreo.Target() + 1) {
		a.SetStatus("Last step")
		return false
	}
	return true
}

// Prev moves one step before the most recently requested block
func (a *App) Prev() bool {
	if !a.GoTo(a.choreo.Target() - 1) {
		a.SetStatus("First step")
		return false
	}
	return true
}

// TogglePairing shows or hides the pairings of the last transition
func (a *App) TogglePairing() {
	if a.pairing.IsVisible() {
		a.pairing.Hide()
		return
	}
	plan := a.player.LastPlan()
	if plan == nil {
		a.SetStatus("No transition yet")
		return
	}
	a.pairing.Show(plan, a.deck)
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}
