package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/abastecimentos/internal/format"
	"github.com/javiermolinar/abastecimentos/internal/supply"
	"github.com/javiermolinar/abastecimentos/internal/tui/view"
)

const (
	viewTitle   = "Histórico de Abastecimentos"
	emptyText   = "Nenhum registro encontrado"
	loadingText = "Carregando..."
)

// View renders the history view.
func (m Model) View() string {
	return view.Compose(m.screen())
}

func (m Model) screen() view.Screen {
	s := view.Screen{
		Width:       m.width,
		Height:      m.height,
		Overlay:     m.modal,
		Placeholder: loadingText,
	}
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	s.Page = m.renderAppContent()
	if m.mode == ModeModal && m.modalType != ModalNone {
		s.Modal = m.renderModalContent()
	}
	return s
}

// renderAppContent stacks header, error banner, filter panel, records and
// footer, giving the records whatever height is left.
func (m Model) renderAppContent() string {
	innerW := m.width - 2
	if innerW <= 0 || m.height <= 0 {
		return "Terminal too small"
	}

	sections := []string{m.renderHeader(innerW)}
	if msg := m.fetch.Err(); msg != "" {
		sections = append(sections, view.ErrorBanner(msg, innerW, m.styles.ErrorStyle))
	}
	if m.filtersVisible() {
		sections = append(sections, m.renderFilters(innerW))
	}
	footer := m.renderFooter(innerW)

	used := 0
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	bodyH := m.height - used - lipgloss.Height(footer)
	if bodyH > 0 {
		sections = append(sections, m.renderRecords(innerW, bodyH))
	}
	sections = append(sections, footer)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().PaddingLeft(1).Render(content)
}

func (m Model) renderHeader(width int) string {
	count := loadingText
	if !m.fetch.IsLoading() {
		n := len(m.items)
		count = strconv.Itoa(n) + " " + format.Plural(n, "registro", "registros")
	}
	return view.RenderHeader(view.HeaderModel{
		Title:    viewTitle,
		Count:    count,
		Page:     m.filter.Page,
		PageSize: m.filter.PageSize,
		Sort:     m.filter.Sort.Label(),
	}, width, view.HeaderStyles{
		TitleStyle: m.styles.TitleStyle,
		MetaStyle:  m.styles.MetaStyle,
	})
}

func (m Model) renderFilters(width int) string {
	labels := [fieldCount]string{"Data inicial", "Data final", "Produto", "Usuário"}
	fields := make([]view.FilterField, fieldCount)
	for i := range m.inputs {
		fields[i] = view.FilterField{
			Label:   labels[i],
			Input:   m.inputs[i].View(),
			Focused: m.mode == ModeFilters && m.focus == i,
		}
	}

	var suggestions []view.Suggestion
	if m.mode == ModeFilters && m.focus == fieldProduct {
		for _, p := range m.suggestions.Items() {
			suggestions = append(suggestions, view.Suggestion{Name: p.Name, Code: p.Code})
		}
	}

	return view.RenderFilterPanel(view.FilterPanelModel{
		Fields:      fields,
		Suggestions: suggestions,
		Cursor:      m.suggestions.Cursor(),
		Applying:    m.applying,
		Stacked:     m.isNarrow(),
	}, width, m.styles.Filters)
}

// renderRecords renders the table on wide terminals and cards otherwise.
func (m Model) renderRecords(width, height int) string {
	if len(m.items) == 0 {
		if m.fetch.IsLoading() {
			return m.styles.EmptyStyle.Render(loadingText)
		}
		return m.styles.EmptyStyle.Render(emptyText)
	}
	if m.isNarrow() {
		return m.renderCards(width, height)
	}
	return m.renderTable(width, height)
}

func (m Model) renderTable(width, height int) string {
	start, end := view.VisibleWindow(len(m.items), m.cursor, view.TableCapacity(height))

	headerStyles := make([]lipgloss.Style, len(view.HistoryHeaders))
	for col := range headerStyles {
		headerStyles[col] = m.styles.HeaderCellStyle
		if view.IsNumericColumn(col) {
			headerStyles[col] = headerStyles[col].Align(lipgloss.Right)
		}
	}

	content := view.TableContent{}
	for i := start; i < end; i++ {
		cells := view.HistoryCells(m.recordRow(m.items[i]))
		styles := make([]lipgloss.Style, len(cells))
		for col := range cells {
			styles[col] = m.cellStyle(i, col)
		}
		content.Rows = append(content.Rows, cells)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return view.RenderTable(view.TableViewState{
		InnerW:       width,
		GridH:        height,
		Headers:      view.HistoryHeaders,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
		VAlign:       lipgloss.Top,
		Render:       true,
	})
}

func (m Model) cellStyle(row, col int) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case row == m.cursor && m.mode != ModeFilters:
		style = m.styles.CellCursorStyle
	case col == 4:
		style = m.styles.CellTotalStyle
	case view.IsNumericColumn(col):
		style = m.styles.CellNumericStyle
	default:
		style = m.styles.CellStyle
	}
	if row%2 == 1 && row != m.cursor {
		style = style.Background(m.styles.CellAltStyle.GetBackground())
	}
	if view.IsNumericColumn(col) {
		style = style.Align(lipgloss.Right)
	}
	return style
}

func (m Model) renderCards(width, height int) string {
	capacity := max(height/view.CardHeight, 1)
	start, end := view.VisibleWindow(len(m.items), m.cursor, capacity)
	rows := make([]view.RecordRow, 0, end-start)
	for _, r := range m.items[start:end] {
		rows = append(rows, m.recordRow(r))
	}
	return view.RenderCards(rows, m.cursor-start, width, m.styles.Cards)
}

func (m Model) renderFooter(width int) string {
	status := m.statusMsg
	if status == "" && m.applying {
		status = view.ApplyLabel(true)
	}
	return view.RenderFooter(view.FooterViewState{
		InnerW:      width,
		StatusText:  status,
		HelpText:    m.helpText(),
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
	})
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeFilters:
		return "enter aplicar · tab próximo · esc voltar"
	case ModeModal:
		return "i imprimir · esc fechar"
	}
	parts := []string{"↑↓ navegar", "enter detalhes", "n/p página", "s ordem", "z por página", "/ filtros"}
	if m.isNarrow() {
		parts[len(parts)-1] = "f filtros"
	}
	parts = append(parts, "e CSV", "i imprimir", "y copiar", "q sair")
	return strings.Join(parts, " · ")
}

// recordRow formats a record for display.
func (m Model) recordRow(r supply.Record) view.RecordRow {
	return view.RecordRow{
		Date:        format.DateTime(r.CreatedAt, m.loc),
		ProductName: r.ProductName,
		ProductCode: r.ProductCode,
		Quantity:    format.Number(r.Quantity),
		UnitCost:    format.BRL(r.UnitCost),
		TotalCost:   format.BRL(r.TotalCost),
		UserName:    r.UserName,
		Note:        r.Note,
	}
}
