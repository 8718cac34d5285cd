package ui

import (
	"github.com/pstuifzand/code-wave/internal/history"
)

// History is the recall list of a prompt. Up and Down walk it while the
// draft typed before walking is kept aside.
type History struct {
	entries []string
	pos     int // -1 when not walking
	limit   int
	draft   string

	manager *history.Manager
	file    string
}

// NewHistory creates an in-memory history holding up to limit entries
func NewHistory(limit int) *History {
	return &History{pos: -1, limit: limit}
}

// NewPersistentHistory creates a history backed by file in manager's
// directory. Load errors leave it empty but usable.
func NewPersistentHistory(limit int, manager *history.Manager, file string) (*History, error) {
	h := NewHistory(limit)
	h.manager, h.file = manager, file

	entries, err := manager.Load(file)
	if err != nil {
		return h, err
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	h.entries = entries
	return h, nil
}

// Add records entry unless it is empty or repeats the newest entry
func (h *History) Add(entry string) error {
	h.Reset()
	if entry == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry) {
		return nil
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	if h.manager == nil {
		return nil
	}
	return h.manager.Save(h.file, h.entries)
}

// Previous steps back, saving draft on the first step
func (h *History) Previous(draft string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.pos < 0:
		h.draft = draft
		h.pos = len(h.entries) - 1
	case h.pos > 0:
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps forward. Walking past the newest entry returns the draft.
func (h *History) Next() (string, bool) {
	if h.pos < 0 {
		return "", false
	}
	h.pos++
	if h.pos >= len(h.entries) {
		draft := h.draft
		h.Reset()
		return draft, true
	}
	return h.entries[h.pos], true
}

// Reset stops walking
func (h *History) Reset() {
	h.pos = -1
	h.draft = ""
}

// Entries returns a copy of the entries, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}
