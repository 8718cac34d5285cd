package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestCommandModeEnter(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	for _, r := range " 12 " {
		c.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	cmd, done := c.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !done || cmd != "12" {
		t.Errorf("Enter = %q, %v; want \"12\", true", cmd, done)
	}
	if c.IsActive() {
		t.Error("prompt still active")
	}

	c.Start()
	c.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if c.Input() != "12" {
		t.Errorf("history recall = %q, want 12", c.Input())
	}
}

func TestCommandModeDeleteWord(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	for _, r := range "goto last  " {
		c.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	c.HandleKey(tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModNone))
	if c.Input() != "goto" {
		t.Errorf("after Ctrl+W input = %q, want goto", c.Input())
	}
}

func TestCommandModeBackspaceOnEmptyCancels(t *testing.T) {
	c := NewCommandMode()
	c.Start()
	cmd, done := c.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if !done || cmd != "" || c.IsActive() {
		t.Errorf("backspace on empty = %q, %v, active=%v", cmd, done, c.IsActive())
	}
}
