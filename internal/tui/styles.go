package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/abastecimentos/internal/tui/theme"
	"github.com/javiermolinar/abastecimentos/internal/tui/view"
)

// Styles holds all lipgloss styles for the view, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle  lipgloss.Style
	MetaStyle   lipgloss.Style
	ErrorStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	EmptyStyle  lipgloss.Style

	// Table
	BorderStyle      lipgloss.Style
	HeaderCellStyle  lipgloss.Style
	CellStyle        lipgloss.Style
	CellAltStyle     lipgloss.Style
	CellNumericStyle lipgloss.Style
	CellTotalStyle   lipgloss.Style
	CellCursorStyle  lipgloss.Style

	// Cards
	Cards view.CardStyles

	// Filter panel
	Filters          view.FilterPanelStyles
	InputTextStyle   lipgloss.Style
	InputCursorStyle lipgloss.Style
	PlaceholderStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalTotalStyle        lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	BackdropStyle          lipgloss.Style
}

// NewStyles creates a Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{palette: palette}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent)

	s.MetaStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnError).
		Background(palette.ErrorBg).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted)

	s.EmptyStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Italic(true).
		Padding(1, 2)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(palette.BgSelection)

	s.HeaderCellStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Padding(0, 1)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Padding(0, 1)

	s.CellAltStyle = s.CellStyle.
		Background(palette.RowAltBg)

	s.CellNumericStyle = s.CellStyle.
		Align(lipgloss.Right)

	s.CellTotalStyle = s.CellNumericStyle.
		Foreground(palette.Success).
		Bold(true)

	s.CellCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(palette.Accent).
		Padding(0, 1)

	cardBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.BgSelection).
		Padding(0, 1)
	s.Cards = view.CardStyles{
		CardStyle:         cardBase,
		CardSelectedStyle: cardBase.BorderForeground(palette.Accent),
		TitleStyle:        lipgloss.NewStyle().Bold(true).Foreground(palette.Fg),
		LabelStyle:        lipgloss.NewStyle().Foreground(palette.FgMuted),
		ValueStyle:        lipgloss.NewStyle().Foreground(palette.Fg),
		TotalStyle:        lipgloss.NewStyle().Foreground(palette.Success).Bold(true),
		NoteStyle:         lipgloss.NewStyle().Foreground(palette.FgMuted).Italic(true),
	}

	s.Filters = view.FilterPanelStyles{
		PanelStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(palette.BgSelection).
			Padding(0, 1),
		LabelStyle:        lipgloss.NewStyle().Foreground(palette.FgMuted),
		LabelFocusedStyle: lipgloss.NewStyle().Foreground(palette.Accent).Bold(true),
		HintStyle:         lipgloss.NewStyle().Foreground(palette.FgMuted),
		SuggestionStyle:   lipgloss.NewStyle().Foreground(palette.Fg),
		SuggestionActive:  lipgloss.NewStyle().Foreground(palette.TextOnAccent).Background(palette.Accent),
		SuggestionCode:    lipgloss.NewStyle().Foreground(palette.FgMuted),
	}

	s.InputTextStyle = lipgloss.NewStyle().Foreground(palette.Fg)
	s.InputCursorStyle = lipgloss.NewStyle().Foreground(palette.Accent)
	s.PlaceholderStyle = lipgloss.NewStyle().Foreground(palette.FgMuted)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(60).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		PaddingLeft(1).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalTotalStyle = lipgloss.NewStyle().
		Foreground(palette.Success).
		Background(modalBg).
		Bold(true)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.Text).
		Padding(0, 3).
		Underline(true)

	s.BackdropStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(modal.Backdrop)

	return s
}
