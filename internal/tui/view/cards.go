package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CardStyles groups styles for the narrow card list.
type CardStyles struct {
	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	TitleStyle        lipgloss.Style
	LabelStyle        lipgloss.Style
	ValueStyle        lipgloss.Style
	TotalStyle        lipgloss.Style
	NoteStyle         lipgloss.Style
}

// noteMaxLines clamps notes on cards.
const noteMaxLines = 2

// CardHeight is the number of lines a card usually takes, borders included.
const CardHeight = 7

// RenderCards renders one bordered card per row. The card at selected is
// highlighted.
func RenderCards(rows []RecordRow, selected, width int, styles CardStyles) string {
	cards := make([]string, 0, len(rows))
	for i, row := range rows {
		style := styles.CardStyle
		if i == selected {
			style = styles.CardSelectedStyle
		}
		cards = append(cards, RenderCard(row, width, style, styles))
	}
	return strings.Join(cards, "\n")
}

// RenderCard renders a single card of the given outer width.
func RenderCard(row RecordRow, width int, frame lipgloss.Style, styles CardStyles) string {
	frameW, _ := frame.GetFrameSize()
	inner := width - frameW
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(Truncate(row.ProductName, inner)))
	b.WriteString("\n")
	meta := row.Date
	if row.ProductCode != "" {
		meta = row.ProductCode + " · " + meta
	}
	b.WriteString(styles.LabelStyle.Render(Truncate(meta, inner)))
	b.WriteString("\n")
	pairs := []string{
		cardPair("Qtd", row.Quantity, styles.ValueStyle, styles),
		cardPair("Unit.", row.UnitCost, styles.ValueStyle, styles),
		cardPair("Total", row.TotalCost, styles.TotalStyle, styles),
	}
	for _, line := range packPairs(pairs, inner) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(cardPair("Usuário", row.User(), styles.ValueStyle, styles))

	if note := strings.TrimSpace(flatten(row.Note)); note != "" {
		lines := ClampLines(WrapTextToWidths(note, inner, inner), noteMaxLines, inner)
		for _, line := range lines {
			b.WriteString("\n")
			b.WriteString(styles.NoteStyle.Render(line))
		}
	}

	return frame.Width(inner).Render(b.String())
}

func cardPair(label, value string, valueStyle lipgloss.Style, styles CardStyles) string {
	return styles.LabelStyle.Render(label+": ") + valueStyle.Render(value)
}

// packPairs joins pairs on as few lines of width as possible.
func packPairs(pairs []string, width int) []string {
	const sep = "  "
	var (
		lines []string
		cur   string
	)
	for _, p := range pairs {
		switch {
		case cur == "":
			cur = p
		case lipgloss.Width(cur)+len(sep)+lipgloss.Width(p) <= width:
			cur += sep + p
		default:
			lines = append(lines, cur)
			cur = p
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
