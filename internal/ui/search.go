package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/code-wave/internal/history"
	"github.com/pstuifzand/code-wave/internal/model"
)

const searchHistorySize = 50

// StepSearch is the prompt that finds a block by its caption. Captionless
// blocks are found by their first non-blank line.
type StepSearch struct {
	active  bool
	query   []rune
	cursor  int
	labels  []string
	matches []int // Block indices, best match first
	choice  int   // Index into matches
	history *History
}

// NewStepSearch creates a search over deck's blocks. A nil manager keeps
// the history in memory only.
func NewStepSearch(deck *model.Deck, manager *history.Manager) *StepSearch {
	s := &StepSearch{labels: searchLabels(deck)}
	if manager != nil {
		h, _ := NewPersistentHistory(searchHistorySize, manager, history.SearchFile)
		s.history = h
	} else {
		s.history = NewHistory(searchHistorySize)
	}
	return s
}

func searchLabels(deck *model.Deck) []string {
	labels := deck.Captions()
	for i, caption := range labels {
		label := strings.Join(strings.Fields(caption), " ")
		if label == "" {
			for _, l := range deck.Block(i).Lines {
				if t := strings.TrimSpace(l.Text); t != "" {
					label = t
					break
				}
			}
		}
		labels[i] = label
	}
	return labels
}

// Start opens the prompt with an empty query
func (s *StepSearch) Start() {
	s.active = true
	s.query = s.query[:0]
	s.cursor = 0
	s.history.Reset()
	s.update()
}

// Stop closes the prompt
func (s *StepSearch) Stop() {
	s.active = false
	s.history.Reset()
}

// IsActive reports whether the prompt is open
func (s *StepSearch) IsActive() bool {
	return s.active
}

// Query returns the text typed so far
func (s *StepSearch) Query() string {
	return string(s.query)
}

// SetQuery replaces the query and refreshes the matches
func (s *StepSearch) SetQuery(q string) {
	s.query = []rune(q)
	s.cursor = len(s.query)
	s.update()
}

// Matches returns the matching block indices, best first
func (s *StepSearch) Matches() []int {
	return s.matches
}

// Selected returns the block the prompt would jump to
func (s *StepSearch) Selected() (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	return s.matches[s.choice], true
}

// History returns the prompt's history
func (s *StepSearch) History() *History {
	return s.history
}

func (s *StepSearch) update() {
	s.choice = 0
	s.matches = s.matches[:0]
	q := string(s.query)
	if q == "" {
		for i := range s.labels {
			s.matches = append(s.matches, i)
		}
		return
	}

	ranks := fuzzy.RankFindFold(q, s.labels)
	sort.Stable(ranks)
	for _, r := range ranks {
		s.matches = append(s.matches, r.OriginalIndex)
	}
}

// HandleKey processes a key while the prompt is open. It returns the chosen
// block when Enter picks one.
func (s *StepSearch) HandleKey(ev *tcell.EventKey) (int, bool) {
	if !s.active {
		return 0, false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
	case tcell.KeyEnter:
		target, ok := s.Selected()
		_ = s.history.Add(string(s.query))
		s.Stop()
		return target, ok
	case tcell.KeyTab, tcell.KeyCtrlN:
		if len(s.matches) > 0 {
			s.choice = (s.choice + 1) % len(s.matches)
		}
	case tcell.KeyBacktab, tcell.KeyCtrlP:
		if len(s.matches) > 0 {
			s.choice = (s.choice - 1 + len(s.matches)) % len(s.matches)
		}
	case tcell.KeyUp:
		if q, ok := s.history.Previous(string(s.query)); ok {
			s.SetQuery(q)
		}
	case tcell.KeyDown:
		if q, ok := s.history.Next(); ok {
			s.SetQuery(q)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.cursor > 0 {
			s.query = append(s.query[:s.cursor-1], s.query[s.cursor:]...)
			s.cursor--
			s.update()
		}
	case tcell.KeyDelete:
		if s.cursor < len(s.query) {
			s.query = append(s.query[:s.cursor], s.query[s.cursor+1:]...)
			s.update()
		}
	case tcell.KeyLeft:
		s.cursor = max(s.cursor-1, 0)
	case tcell.KeyRight:
		s.cursor = min(s.cursor+1, len(s.query))
	case tcell.KeyHome, tcell.KeyCtrlA:
		s.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		s.cursor = len(s.query)
	case tcell.KeyRune:
		s.query = append(s.query[:s.cursor], append([]rune{ev.Rune()}, s.query[s.cursor:]...)...)
		s.cursor++
		s.update()
	}
	return 0, false
}

// Render draws the prompt on row y
func (s *StepSearch) Render(screen *Screen, y int) {
	width := screen.GetWidth()
	screen.Fill(Rect{X: 0, Y: y, W: width, H: 1}, screen.SearchTextStyle())
	x := screen.DrawString(0, y, "Step: ", screen.SearchLabelStyle())

	var summary string
	if target, ok := s.Selected(); ok {
		summary = fmt.Sprintf(" %d/%d → %d %s", s.choice+1, len(s.matches), target+1, s.labels[target])
	} else {
		summary = " (no matches)"
	}

	for i, r := range s.query {
		style := screen.SearchTextStyle()
		if i == s.cursor {
			style = screen.SearchCursorStyle()
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if s.cursor >= len(s.query) {
		screen.SetCell(x, y, ' ', screen.SearchCursorStyle())
	}
	x++
	screen.DrawStringLimited(x, y, summary, width-x, screen.SearchMatchStyle())
}
