package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/tui/commands"
)

// editProductQuery records a new product query. Any selected product is
// dropped and pending lookups are invalidated; a non-empty query schedules
// a debounced lookup.
func (m *Model) editProductQuery(query string) tea.Cmd {
	if query == m.filter.ProductQuery {
		return nil
	}
	m.filter.ProductQuery = query
	m.filter.ProductID = ""
	m.filter.Page = 1
	m.suggestSeq++

	var search tea.Cmd
	q := strings.TrimSpace(query)
	if q == "" {
		m.suggestions.Clear()
	} else {
		m.debug.LogSearch("SEARCH_SCHEDULED", m.suggestSeq, m.suggestSeq, q, nil)
		search = commands.DebounceSearch(m.suggestSeq, q, m.debounce)
	}
	return tea.Batch(search, m.syncFetch())
}

// handleSearchDue runs the lookup if no edit happened during the delay.
func (m *Model) handleSearchDue(msg commands.SearchDueMsg) tea.Cmd {
	if msg.Seq != m.suggestSeq {
		m.debug.LogSearch("SEARCH_CANCELLED", msg.Seq, m.suggestSeq, msg.Query, nil)
		return nil
	}
	m.debug.LogSearch("SEARCH", msg.Seq, m.suggestSeq, msg.Query, nil)
	return commands.SearchProducts(m.src, msg.Seq, msg.Query)
}

// handleProductsFound replaces the suggestions. Failures clear them
// without surfacing an error.
func (m *Model) handleProductsFound(msg commands.ProductsFoundMsg) {
	if msg.Seq != m.suggestSeq {
		m.debug.LogSearch("SEARCH_STALE", msg.Seq, m.suggestSeq, msg.Query, msg.Err)
		return
	}
	if msg.Err != nil {
		m.debug.LogSearch("SEARCH_FAILED", msg.Seq, m.suggestSeq, msg.Query, msg.Err)
		m.suggestions.Clear()
		return
	}
	m.debug.LogSearch("SEARCH_RESULT", msg.Seq, m.suggestSeq, msg.Query, nil)
	m.suggestions.Set(msg.Products)
}

// selectSuggestion picks the highlighted product.
func (m *Model) selectSuggestion() tea.Cmd {
	p, ok := m.suggestions.Selected()
	if !ok {
		return nil
	}
	m.filter.ProductID = p.ID
	m.filter.ProductQuery = p.Label()
	m.inputs[fieldProduct].SetValue(m.filter.ProductQuery)
	m.inputs[fieldProduct].CursorEnd()
	m.filter.Page = 1
	m.suggestions.Clear()
	m.suggestSeq++
	return m.syncFetch()
}

// clearProduct removes the product id, query and suggestions together.
func (m *Model) clearProduct() tea.Cmd {
	m.filter.ProductID = ""
	m.filter.ProductQuery = ""
	m.inputs[fieldProduct].SetValue("")
	m.suggestions.Clear()
	m.suggestSeq++
	m.filter.Page = 1
	return m.syncFetch()
}
