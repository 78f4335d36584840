package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DetailModel contains the fields needed to render the record detail body.
type DetailModel struct {
	Row RecordRow
}

// DetailStyles groups styles for the record detail body.
type DetailStyles struct {
	BodyStyle         lipgloss.Style
	LabelStyle        lipgloss.Style
	SectionTitleStyle lipgloss.Style
	TotalStyle        lipgloss.Style
}

// RenderDetailBody renders the product and additional info sections. Line
// breaks in the note are kept.
func RenderDetailBody(model DetailModel, styles DetailStyles) string {
	row := model.Row
	var b strings.Builder

	b.WriteString(styles.SectionTitleStyle.Render("Produto") + "\n")
	b.WriteString(detailLine("Nome", row.ProductName, styles.BodyStyle, styles))
	b.WriteString(detailLine("Código", dash(row.ProductCode), styles.BodyStyle, styles))
	b.WriteString(detailLine("Quantidade", row.Quantity, styles.BodyStyle, styles))
	b.WriteString(detailLine("Custo unitário", row.UnitCost, styles.BodyStyle, styles))
	b.WriteString(detailLine("Total", row.TotalCost, styles.TotalStyle, styles))

	b.WriteString("\n" + styles.SectionTitleStyle.Render("Informações adicionais") + "\n")
	b.WriteString(detailLine("Data", row.Date, styles.BodyStyle, styles))
	b.WriteString(detailLine("Usuário", row.User(), styles.BodyStyle, styles))

	note := strings.ReplaceAll(row.Note, "\r\n", "\n")
	if strings.TrimSpace(note) == "" {
		b.WriteString(styles.LabelStyle.Render(" Observação: ") + styles.BodyStyle.Render("-"))
		return b.String()
	}
	b.WriteString(styles.LabelStyle.Render(" Observação:"))
	for _, line := range strings.Split(note, "\n") {
		b.WriteString("\n" + styles.BodyStyle.Render("  "+line))
	}
	return b.String()
}

func detailLine(label, value string, valueStyle lipgloss.Style, styles DetailStyles) string {
	return styles.LabelStyle.Render(" "+label+": ") + valueStyle.Render(value) + "\n"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DetailFooter renders the footer for the detail modal.
func DetailFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[i] Imprimir", "[Esc] Fechar")
}
