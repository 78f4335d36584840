// Package view provides view composition helpers for the history view.
package view

import "strings"

// Overlay draws a modal box over the rendered page.
type Overlay interface {
	Render(base string, width, height int, content string) string
}

// Screen is one frame of the history view: the page underneath and, when
// a record detail is open, the modal drawn over it.
type Screen struct {
	Width   int
	Height  int
	Page    string
	Modal   string // empty when no modal is open
	Overlay Overlay
	// Placeholder is shown until the terminal reports its size.
	Placeholder string
}

// Compose renders s. The page is cut to the screen height so a long
// result list never scrolls the alternate screen.
func Compose(s Screen) string {
	if s.Width <= 0 || s.Height <= 0 {
		return s.Placeholder
	}

	page := clipLines(s.Page, s.Height)
	if s.Modal != "" && s.Overlay != nil {
		return s.Overlay.Render(page, s.Width, s.Height, s.Modal)
	}
	return page
}

func clipLines(text string, height int) string {
	if strings.Count(text, "\n") < height {
		return text
	}
	lines := strings.SplitN(text, "\n", height+1)
	return strings.Join(lines[:height], "\n")
}
