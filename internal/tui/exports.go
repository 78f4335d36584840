package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/supply"
	"github.com/javiermolinar/abastecimentos/internal/tui/commands"
)

// statusDuration is how long a status message stays visible.
const statusDuration = 3 * time.Second

var errNoSink = errors.New("no export destination configured")

// exportCSV delivers the current page as CSV.
func (m *Model) exportCSV() tea.Cmd {
	if m.sink == nil {
		return m.setError("exporting csv", errNoSink)
	}
	data := export.CSV(m.items, m.loc)
	return commands.ExportCSV(m.sink, export.CSVFilename(m.now()), data)
}

// copyCSV puts the current page CSV on the clipboard.
func (m *Model) copyCSV() tea.Cmd {
	if m.clipboardWrite == nil {
		return nil
	}
	return commands.CopyText(m.clipboardWrite, string(export.CSV(m.items, m.loc)))
}

// printRecords delivers a printable document with records.
func (m *Model) printRecords(records []supply.Record) tea.Cmd {
	if m.sink == nil {
		return m.setError("printing", errNoSink)
	}
	html, err := export.PrintHTML(records, m.loc)
	if err != nil {
		return m.setError("printing", err)
	}
	return commands.Print(m.sink, export.PrintFilename(m.now()), html)
}

// handleExportDone reports the export outcome in the status line.
func (m *Model) handleExportDone(msg commands.ExportDoneMsg) tea.Cmd {
	if msg.Err != nil {
		m.debug.LogError(msg.Kind, msg.Err)
		return m.setStatus("Erro: " + msg.Err.Error())
	}
	switch msg.Kind {
	case "csv":
		return m.setStatus("CSV salvo em " + msg.Path)
	case "print":
		return m.setStatus("Impressão aberta: " + msg.Path)
	case "clipboard":
		return m.setStatus("CSV copiado")
	}
	return nil
}

func (m *Model) setError(context string, err error) tea.Cmd {
	m.debug.LogError(context, err)
	return m.setStatus("Erro: " + err.Error())
}

// setStatus shows msg and schedules its removal.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = m.now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
