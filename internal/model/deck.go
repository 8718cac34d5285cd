// Package model contains the deck model: code blocks, their lines and the
// interest sets attached to them.
package model

import (
	"fmt"
	"strings"
)

// Line is a single line of a code block
type Line struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight,omitempty"` // Explicitly marked by the author
}

// CodeBlock is one step of a deck
type CodeBlock struct {
	Index    int         `json:"-"` // Position in the owning deck
	Lang     string      `json:"lang,omitempty"`
	Lines    []Line      `json:"lines"`
	Caption  string      `json:"caption,omitempty"`
	Interest InterestSet `json:"-"` // Attached once at registration
}

// Deck is the ordered sequence of code blocks
type Deck struct {
	Title  string       `json:"title,omitempty"`
	Intro  string       `json:"intro,omitempty"`
	Blocks []*CodeBlock `json:"blocks"`
}

// NewBlock creates a code block from raw text, splitting it on newlines
func NewBlock(lang, text string) *CodeBlock {
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Text: p}
	}
	return &CodeBlock{Lang: lang, Lines: lines}
}

// NewDeck creates a deck from blocks and fixes up their indices
func NewDeck(title string, blocks ...*CodeBlock) *Deck {
	d := &Deck{Title: title, Blocks: blocks}
	d.Reindex()
	return d
}

// Reindex assigns every block its position in the deck
func (d *Deck) Reindex() {
	for i, b := range d.Blocks {
		b.Index = i
	}
}

// Len returns the number of blocks
func (d *Deck) Len() int {
	return len(d.Blocks)
}

// Block returns the block at index i. An unknown index is a broken caller
// contract and panics.
func (d *Deck) Block(i int) *CodeBlock {
	if i < 0 || i >= len(d.Blocks) {
		panic(fmt.Sprintf("model: block %d not in deck of %d blocks", i, len(d.Blocks)))
	}
	return d.Blocks[i]
}

// Captions returns the caption of every block, in order
func (d *Deck) Captions() []string {
	captions := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		captions[i] = b.Caption
	}
	return captions
}

// Texts returns the plain text of every line
func (b *CodeBlock) Texts() []string {
	texts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Explicit returns the indices of lines the author highlighted
func (b *CodeBlock) Explicit() []int {
	var indices []int
	for i, l := range b.Lines {
		if l.Highlight {
			indices = append(indices, i)
		}
	}
	return indices
}

// Len returns the number of lines
func (b *CodeBlock) Len() int {
	return len(b.Lines)
}
