package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		m.clampCursor()
		return m, nil

	case commands.HistoryLoadedMsg:
		m.handleHistoryLoaded(msg)
		return m, nil

	case commands.SearchDueMsg:
		return m, m.handleSearchDue(msg)

	case commands.ProductsFoundMsg:
		m.handleProductsFound(msg)
		return m, nil

	case commands.ExportDoneMsg:
		return m, m.handleExportDone(msg)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blink and other input messages
	if m.mode == ModeFilters {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleMouseMsg closes the modal on a click outside of its box.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeModal || !m.modal.IsOpen() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	bounds := m.modal.Bounds(m.width, m.height, m.renderModalContent())
	if !bounds.Contains(msg.X, msg.Y) {
		m.closeModal("click outside")
	}
	return m, nil
}

// resizeInputs spreads the filter inputs over the available width.
func (m *Model) resizeInputs() {
	w := m.width - 6
	if !m.isNarrow() {
		w = w/fieldCount - 2
	}
	if w < 10 {
		w = 10
	}
	for i := range m.inputs {
		m.inputs[i].Width = w
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
