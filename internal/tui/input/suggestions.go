// Package input holds keyboard-driven input helpers for the history view.
package input

import "github.com/javiermolinar/abastecimentos/internal/supply"

// Suggestions is the product autocomplete list with a highlighted entry.
type Suggestions struct {
	items  []supply.Product
	cursor int
}

// Set replaces the list and highlights the first entry.
func (s *Suggestions) Set(items []supply.Product) {
	s.items = items
	s.cursor = 0
}

// Clear empties the list.
func (s *Suggestions) Clear() {
	s.items = nil
	s.cursor = 0
}

// Items returns the current entries.
func (s Suggestions) Items() []supply.Product {
	return s.items
}

// Len returns the number of entries.
func (s Suggestions) Len() int {
	return len(s.items)
}

// Cursor returns the highlighted index.
func (s Suggestions) Cursor() int {
	return s.cursor
}

// Next highlights the following entry, wrapping around.
func (s *Suggestions) Next() {
	if len(s.items) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.items)
}

// Prev highlights the preceding entry, wrapping around.
func (s *Suggestions) Prev() {
	if len(s.items) == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + len(s.items)) % len(s.items)
}

// Selected returns the highlighted entry.
func (s Suggestions) Selected() (supply.Product, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return supply.Product{}, false
	}
	return s.items[s.cursor], true
}
