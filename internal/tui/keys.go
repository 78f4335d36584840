package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.debug.LogKeyPress(msg, m.mode)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeFilters:
		return m.handleFilterKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

// handleListKeys handles keys while browsing records.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.items)-1, 0)
	case "enter":
		m.openDetail()

	// Paging
	case "n", "right":
		return m, m.nextPage()
	case "p", "left":
		return m, m.prevPage()
	case "s":
		return m, m.toggleSort()
	case "z":
		return m, m.cyclePageSize()
	case "r":
		return m, m.issueFetch()

	// Filters
	case "/":
		m.focusFilters()
	case "f":
		if m.isNarrow() && m.showFilters {
			m.showFilters = false
			return m, nil
		}
		m.focusFilters()
	case "c":
		return m, m.clearFilters()

	// Export
	case "e":
		return m, m.exportCSV()
	case "i":
		return m, m.printRecords(m.items)
	case "y":
		return m, m.copyCSV()
	}
	return m, nil
}

// handleFilterKeys handles keys while the filter panel has focus.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggesting := m.focus == fieldProduct && m.suggestions.Len() > 0

	switch msg.String() {
	case "esc":
		if suggesting {
			m.suggestions.Clear()
			m.suggestSeq++
			return m, nil
		}
		m.blurFilters()
		return m, nil
	case "tab":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "down", "ctrl+n":
		if suggesting {
			m.suggestions.Next()
		}
		return m, nil
	case "up", "ctrl+p":
		if suggesting {
			m.suggestions.Prev()
		}
		return m, nil
	case "enter":
		if suggesting {
			return m, m.selectSuggestion()
		}
		return m, m.applyFilters()
	case "ctrl+r":
		return m, m.clearFilters()
	case "ctrl+x":
		return m, m.clearProduct()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, tea.Batch(cmd, m.editField(m.focus))
}

// handleModalKeys handles keys while the detail modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.closeModal("key " + msg.String())
	case "i":
		if m.selected == nil {
			return m, nil
		}
		records := []supply.Record{*m.selected}
		m.closeModal("print")
		return m, m.printRecords(records)
	}
	return m, nil
}

func (m *Model) focusFilters() {
	if m.isNarrow() {
		m.showFilters = true
	}
	m.setMode(ModeFilters, "focus filters")
	m.setFocus(m.focus)
}

func (m *Model) blurFilters() {
	m.inputs[m.focus].Blur()
	m.setMode(ModeList, "leave filters")
}

func (m *Model) setFocus(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = field
	m.inputs[field].Focus()
}

func (m *Model) setMode(mode Mode, reason string) {
	if m.mode != mode {
		m.debug.LogModeChange(m.mode, mode, reason)
	}
	m.mode = mode
}
