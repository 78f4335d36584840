package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel contains the fields shown in the view header.
type HeaderModel struct {
	Title    string
	Count    string // "N registro(s)" or a loading label
	Page     int
	PageSize int
	Sort     string
}

// HeaderStyles groups styles for the header.
type HeaderStyles struct {
	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style
}

// RenderHeader renders the title on the left and the paging summary on the
// right of a single line.
func RenderHeader(model HeaderModel, width int, styles HeaderStyles) string {
	title := styles.TitleStyle.Render(model.Title)
	meta := styles.MetaStyle.Render(strings.Join([]string{
		model.Count,
		"Página " + itoa(model.Page),
		itoa(model.PageSize) + " por página",
		model.Sort,
	}, " · "))

	gap := width - lipgloss.Width(title) - lipgloss.Width(meta)
	if gap < 1 {
		return title + "\n" + meta
	}
	return title + strings.Repeat(" ", gap) + meta
}

// ErrorBanner renders the load failure message.
func ErrorBanner(message string, width int, style lipgloss.Style) string {
	frameW, _ := style.GetFrameSize()
	inner := width - frameW
	if inner < 0 {
		inner = 0
	}
	return style.Width(inner).Render(Truncate(message, inner))
}
