package input

import (
	"testing"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

func TestSuggestionsNavigation(t *testing.T) {
	var s Suggestions
	if _, ok := s.Selected(); ok {
		t.Fatal("expected no selection on empty list")
	}
	s.Next()
	s.Prev()
	if s.Cursor() != 0 {
		t.Fatalf("cursor moved on empty list: %d", s.Cursor())
	}

	s.Set([]supply.Product{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}})
	if p, _ := s.Selected(); p.ID != "1" {
		t.Errorf("expected first entry highlighted, got %q", p.ID)
	}

	s.Next()
	s.Next()
	if p, _ := s.Selected(); p.ID != "3" {
		t.Errorf("expected third entry, got %q", p.ID)
	}
	s.Next()
	if s.Cursor() != 0 {
		t.Errorf("expected wrap to first, got %d", s.Cursor())
	}
	s.Prev()
	if s.Cursor() != 2 {
		t.Errorf("expected wrap to last, got %d", s.Cursor())
	}
}

func TestSuggestionsSetResetsCursor(t *testing.T) {
	var s Suggestions
	s.Set([]supply.Product{{ID: "1"}, {ID: "2"}})
	s.Next()
	s.Set([]supply.Product{{ID: "9"}})
	if s.Cursor() != 0 || s.Len() != 1 {
		t.Errorf("unexpected state cursor=%d len=%d", s.Cursor(), s.Len())
	}

	s.Clear()
	if s.Len() != 0 || s.Items() != nil {
		t.Error("expected empty list after Clear")
	}
}
