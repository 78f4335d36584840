package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FilterField is one labeled input of the filter panel.
type FilterField struct {
	Label   string
	Input   string // rendered text input
	Focused bool
}

// Suggestion is a product entry of the autocomplete list.
type Suggestion struct {
	Name string
	Code string
}

// FilterPanelModel contains the fields needed to render the filter panel.
type FilterPanelModel struct {
	Fields      []FilterField
	Suggestions []Suggestion
	Cursor      int // highlighted suggestion
	Applying    bool
	Stacked     bool // one field per line
}

// FilterPanelStyles groups styles for the filter panel.
type FilterPanelStyles struct {
	PanelStyle        lipgloss.Style
	LabelStyle        lipgloss.Style
	LabelFocusedStyle lipgloss.Style
	HintStyle         lipgloss.Style
	SuggestionStyle   lipgloss.Style
	SuggestionActive  lipgloss.Style
	SuggestionCode    lipgloss.Style
}

// ApplyLabel is the label of the apply action.
func ApplyLabel(applying bool) string {
	if applying {
		return "Aplicando..."
	}
	return "Aplicar"
}

// RenderFilterPanel renders the filter inputs, product suggestions and the
// panel actions.
func RenderFilterPanel(model FilterPanelModel, width int, styles FilterPanelStyles) string {
	frameW, _ := styles.PanelStyle.GetFrameSize()
	inner := width - frameW
	if inner < 0 {
		inner = 0
	}

	fields := make([]string, 0, len(model.Fields))
	for _, f := range model.Fields {
		label := styles.LabelStyle
		if f.Focused {
			label = styles.LabelFocusedStyle
		}
		fields = append(fields, label.Render(f.Label)+"\n"+f.Input)
	}

	var body string
	if model.Stacked {
		body = strings.Join(fields, "\n")
	} else {
		cols := make([]string, 0, len(fields))
		colW := inner / max(len(fields), 1)
		for _, f := range fields {
			cols = append(cols, lipgloss.NewStyle().Width(colW).Render(f))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	if len(model.Suggestions) > 0 {
		body += "\n" + RenderSuggestions(model.Suggestions, model.Cursor, inner, styles)
	}

	hint := "[enter] " + ApplyLabel(model.Applying) + "  [ctrl+r] Limpar  [ctrl+x] Limpar produto  [tab] Próximo  [esc] Voltar"
	body += "\n" + styles.HintStyle.Render(Truncate(hint, inner))

	return styles.PanelStyle.Width(inner).Render(body)
}

// RenderSuggestions renders the product suggestion list with the code
// below each name.
func RenderSuggestions(items []Suggestion, cursor, width int, styles FilterPanelStyles) string {
	lines := make([]string, 0, len(items)*2)
	for i, item := range items {
		style := styles.SuggestionStyle
		marker := "  "
		if i == cursor {
			style = styles.SuggestionActive
			marker = "› "
		}
		lines = append(lines, style.Render(Truncate(marker+item.Name, width)))
		if item.Code != "" {
			lines = append(lines, styles.SuggestionCode.Render(Truncate("    "+item.Code, width)))
		}
	}
	return strings.Join(lines, "\n")
}
