package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/supply"
	"github.com/javiermolinar/abastecimentos/internal/tui/commands"
)

// issueFetch starts a history request for the current filter and makes it
// the latest one. Responses to older requests are dropped.
func (m *Model) issueFetch() tea.Cmd {
	m.beginFetch()
	return m.loadCmd()
}

// beginFetch marks a new request for the current params as in flight.
func (m *Model) beginFetch() {
	m.reqID++
	m.lastParams = m.filter.Params()
	m.fetch = Loading()
	m.debug.LogFetch(m.reqID, m.lastParams)
}

// loadCmd loads the request beginFetch marked.
func (m Model) loadCmd() tea.Cmd {
	return commands.LoadHistory(m.src, m.lastParams, m.reqID)
}

// syncFetch fetches only when the derived params differ from the last ones
// fetched.
func (m *Model) syncFetch() tea.Cmd {
	if m.filter.Params().Equal(m.lastParams) {
		return nil
	}
	return m.issueFetch()
}

// applyFilters goes back to page 1 and always issues one fetch.
func (m *Model) applyFilters() tea.Cmd {
	m.filter.Page = 1
	m.applying = true
	return m.issueFetch()
}

// clearFilters empties every filter field. Page size and sort are kept.
func (m *Model) clearFilters() tea.Cmd {
	m.filter.Clear()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.suggestions.Clear()
	m.suggestSeq++
	return m.syncFetch()
}

// editField copies the text of a filter input into the filter. Only an
// actual change resets the page.
func (m *Model) editField(field int) tea.Cmd {
	value := m.inputs[field].Value()
	switch field {
	case fieldStart:
		if value == m.filter.StartDate {
			return nil
		}
		m.filter.StartDate = value
	case fieldEnd:
		if value == m.filter.EndDate {
			return nil
		}
		m.filter.EndDate = value
	case fieldUser:
		if value == m.filter.UserID {
			return nil
		}
		m.filter.UserID = value
	case fieldProduct:
		return m.editProductQuery(value)
	default:
		return nil
	}
	m.filter.Page = 1
	return m.syncFetch()
}

func (m *Model) nextPage() tea.Cmd {
	if m.fetch.IsLoading() || !m.hasNext {
		return nil
	}
	m.filter.Page++
	return m.syncFetch()
}

func (m *Model) prevPage() tea.Cmd {
	if m.fetch.IsLoading() || m.filter.Page <= 1 {
		return nil
	}
	m.filter.Page--
	return m.syncFetch()
}

func (m *Model) toggleSort() tea.Cmd {
	m.filter.Sort = m.filter.Sort.Toggle()
	m.filter.Page = 1
	return m.syncFetch()
}

func (m *Model) cyclePageSize() tea.Cmd {
	m.filter.PageSize = supply.NextPageSize(m.filter.PageSize)
	m.filter.Page = 1
	return m.syncFetch()
}

// handleHistoryLoaded stores the result of the latest request.
func (m *Model) handleHistoryLoaded(msg commands.HistoryLoadedMsg) {
	items := 0
	if msg.Page != nil {
		items = len(msg.Page.Items)
	}
	m.debug.LogFetchResult(msg.ReqID, m.reqID, items, msg.Err)
	if msg.ReqID != m.reqID {
		return
	}

	m.applying = false
	if msg.Err != nil {
		m.fetch = Failed(msg.Err)
		return
	}

	m.items = []supply.Record{}
	m.hasNext = false
	if msg.Page != nil {
		if msg.Page.Items != nil {
			m.items = msg.Page.Items
		}
		m.hasNext = msg.Page.HasNext
	}
	m.cursor = 0
	m.fetch = Loaded()
}
