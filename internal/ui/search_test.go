package ui

import (
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/code-wave/internal/history"
	"github.com/pstuifzand/code-wave/internal/model"
)

func searchDeck() *model.Deck {
	blocks := []*model.CodeBlock{
		model.NewBlock("go", "package main"),
		model.NewBlock("go", "func parse() {}"),
		model.NewBlock("go", "\n  func render() {}"),
	}
	blocks[0].Caption = "Start with a package"
	blocks[1].Caption = "Add the parser"
	return model.NewDeck("", blocks...)
}

func typeString(s *StepSearch, text string) {
	for _, r := range text {
		s.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestStepSearchLabels(t *testing.T) {
	labels := searchLabels(searchDeck())
	want := []string{"Start with a package", "Add the parser", "func render() {}"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestStepSearchFindsCaption(t *testing.T) {
	s := NewStepSearch(searchDeck(), nil)
	s.Start()
	if got := len(s.Matches()); got != 3 {
		t.Fatalf("empty query matches %d blocks, want 3", got)
	}

	typeString(s, "PARSER")
	target, ok := s.Selected()
	if !ok || target != 1 {
		t.Fatalf("Selected() = %d, %v; want 1, true", target, ok)
	}

	got, ok := s.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !ok || got != 1 {
		t.Errorf("Enter = %d, %v; want 1, true", got, ok)
	}
	if s.IsActive() {
		t.Error("prompt still active after Enter")
	}
	if entries := s.History().Entries(); len(entries) != 1 || entries[0] != "PARSER" {
		t.Errorf("history = %q", entries)
	}
}

func TestStepSearchNoMatch(t *testing.T) {
	s := NewStepSearch(searchDeck(), nil)
	s.Start()
	typeString(s, "zzz")
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection")
	}
	if _, ok := s.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); ok {
		t.Error("Enter without matches should not jump")
	}
}

func TestStepSearchEditing(t *testing.T) {
	s := NewStepSearch(searchDeck(), nil)
	s.Start()
	typeString(s, "rendr")
	s.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	typeString(s, "e")
	if s.Query() != "render" {
		t.Fatalf("Query() = %q", s.Query())
	}
	s.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	s.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if s.Query() != "rende" {
		t.Fatalf("Query() after backspace = %q", s.Query())
	}
	s.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if s.IsActive() {
		t.Error("Escape should close the prompt")
	}
}

func TestStepSearchPersistsHistory(t *testing.T) {
	manager, err := history.NewManagerInDir(filepath.Join(t.TempDir(), "history"))
	if err != nil {
		t.Fatal(err)
	}

	s := NewStepSearch(searchDeck(), manager)
	s.Start()
	typeString(s, "package")
	s.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	again := NewStepSearch(searchDeck(), manager)
	again.Start()
	again.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if again.Query() != "package" {
		t.Errorf("recalled query = %q, want package", again.Query())
	}
}

func TestHistoryWalk(t *testing.T) {
	h := NewHistory(2)
	h.Add("one")
	h.Add("two")
	h.Add("two")
	h.Add("three")
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	if e, _ := h.Previous("draft"); e != "three" {
		t.Errorf("Previous = %q, want three", e)
	}
	if e, _ := h.Previous(""); e != "two" {
		t.Errorf("Previous = %q, want two", e)
	}
	if e, _ := h.Previous(""); e != "two" {
		t.Errorf("Previous at oldest = %q, want two", e)
	}
	if e, _ := h.Next(); e != "three" {
		t.Errorf("Next = %q, want three", e)
	}
	if e, ok := h.Next(); !ok || e != "draft" {
		t.Errorf("Next past end = %q, %v; want draft", e, ok)
	}
	if _, ok := h.Next(); ok {
		t.Error("Next when not walking should fail")
	}
}
