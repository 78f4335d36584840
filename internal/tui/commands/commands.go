// Package commands provides command constructors and message types for the
// history view.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// HistoryLoadedMsg carries the result of a history fetch. ReqID identifies
// the fetch that produced it.
type HistoryLoadedMsg struct {
	ReqID  uint64
	Params supply.Params
	Page   *supply.Page
	Err    error
}

// SearchDueMsg fires once the autocomplete debounce delay has elapsed.
type SearchDueMsg struct {
	Seq   uint64
	Query string
}

// ProductsFoundMsg carries autocomplete results for generation Seq.
type ProductsFoundMsg struct {
	Seq      uint64
	Query    string
	Products []supply.Product
	Err      error
}

// ExportDoneMsg is sent once an export reached its sink.
type ExportDoneMsg struct {
	Kind string // "csv", "print" or "clipboard"
	Path string
	Err  error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadHistory fetches one page of history for params.
func LoadHistory(src supply.Source, params supply.Params, reqID uint64) tea.Cmd {
	return func() tea.Msg {
		page, err := src.ListHistory(context.Background(), params)
		if err != nil {
			return HistoryLoadedMsg{ReqID: reqID, Params: params, Err: err}
		}
		if page == nil {
			page = &supply.Page{}
		}
		return HistoryLoadedMsg{ReqID: reqID, Params: params, Page: page}
	}
}

// DebounceSearch waits delay and then reports that the search for query,
// scheduled as generation seq, is due.
func DebounceSearch(seq uint64, query string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchDueMsg{Seq: seq, Query: query}
	})
}

// SearchProducts looks up products for the autocomplete, keeping at most
// supply.SuggestionLimit results.
func SearchProducts(src supply.Source, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		products, err := src.SearchProducts(context.Background(), query)
		if err != nil {
			return ProductsFoundMsg{Seq: seq, Query: query, Err: err}
		}
		return ProductsFoundMsg{Seq: seq, Query: query, Products: supply.TruncateProducts(products)}
	}
}

// ExportCSV hands a CSV document to the sink.
func ExportCSV(sink export.Sink, name string, data []byte) tea.Cmd {
	return func() tea.Msg {
		path, err := sink.Download(name, data)
		if err != nil {
			return ExportDoneMsg{Kind: "csv", Err: fmt.Errorf("exporting csv: %w", err)}
		}
		return ExportDoneMsg{Kind: "csv", Path: path}
	}
}

// Print hands a printable document to the sink.
func Print(sink export.Sink, name string, html []byte) tea.Cmd {
	return func() tea.Msg {
		path, err := sink.OpenPrint(name, html)
		if err != nil {
			return ExportDoneMsg{Kind: "print", Path: path, Err: fmt.Errorf("printing: %w", err)}
		}
		return ExportDoneMsg{Kind: "print", Path: path}
	}
}

// CopyText writes text to the clipboard through write.
func CopyText(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return ExportDoneMsg{Kind: "clipboard", Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return ExportDoneMsg{Kind: "clipboard"}
	}
}
