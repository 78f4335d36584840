package tui

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/abastecimentos/internal/config"
	"github.com/javiermolinar/abastecimentos/internal/supply"
	"github.com/javiermolinar/abastecimentos/internal/tui/commands"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu        sync.Mutex
	page      *supply.Page
	products  []supply.Product
	err       error
	searchErr error

	history  []supply.Params
	searches []string
}

func (f *fakeSource) ListHistory(_ context.Context, params supply.Params) (*supply.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeSource) SearchProducts(_ context.Context, query string) ([]supply.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.products, nil
}

func (f *fakeSource) historyCalls() []supply.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]supply.Params(nil), f.history...)
}

func (f *fakeSource) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

type sinkFile struct {
	name string
	data []byte
}

type fakeSink struct {
	downloads []sinkFile
	prints    []sinkFile
	err       error
}

func (f *fakeSink) Download(name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.downloads = append(f.downloads, sinkFile{name: name, data: data})
	return "/exports/" + name, nil
}

func (f *fakeSink) OpenPrint(name string, html []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prints = append(f.prints, sinkFile{name: name, data: html})
	return "/exports/" + name, nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.UI.Timezone = "UTC"
	cfg.UI.MobileWidth = 100
	cfg.History.PageSize = 20
	return cfg
}

func newTestModel(src *fakeSource, sink *fakeSink, opts ...ModelOption) Model {
	base := []ModelOption{
		WithSink(sink),
		WithClipboard(func(string) error { return nil }),
		WithClock(func() time.Time { return testNow }),
		WithDebounce(time.Millisecond),
		WithLocation(time.UTC),
	}
	return New(src, testConfig(), append(base, opts...)...)
}

func sampleRecords(n int) []supply.Record {
	records := make([]supply.Record, n)
	for i := range records {
		records[i] = supply.Record{
			ID:          supply.ID(string(rune('1' + i))),
			CreatedAt:   testNow.Add(-time.Duration(i) * time.Hour),
			ProductName: "Produto " + string(rune('A'+i)),
			ProductCode: "P" + string(rune('A'+i)),
			Quantity:    float64(i + 1),
			UnitCost:    2.5,
			TotalCost:   2.5 * float64(i+1),
			UserName:    "Maria",
		}
	}
	return records
}

// loaded delivers a successful response to the latest request.
func loaded(t *testing.T, m Model, records []supply.Record, hasNext bool) Model {
	t.Helper()
	return update(t, m, commands.HistoryLoadedMsg{
		ReqID:  m.reqID,
		Params: m.lastParams,
		Page:   &supply.Page{Items: records, HasNext: hasNext},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

// collect runs cmd and returns the messages it produces, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, keyRunes(string(r)))
	}
	return m
}

func TestNewIssuesInitialFetch(t *testing.T) {
	src := &fakeSource{page: &supply.Page{Items: sampleRecords(2)}}
	m := newTestModel(src, &fakeSink{})

	if m.reqID != 1 {
		t.Fatalf("reqID = %d, want 1", m.reqID)
	}
	if !m.fetch.IsLoading() {
		t.Fatalf("fetch = %+v, want loading", m.fetch)
	}

	p := m.lastParams
	if p.StartDate != nil || p.EndDate != nil || p.ProductID != nil || p.UserID != nil {
		t.Errorf("expected every optional param unset, got %+v", p)
	}
	if p.Page != 1 || p.PageSize != 20 || p.Sort != supply.SortNewest {
		t.Errorf("unexpected paging params %+v", p)
	}

	var got *commands.HistoryLoadedMsg
	if calls := src.historyCalls(); len(calls) != 0 {
		t.Fatalf("New must not call the source, got %d calls", len(calls))
	}
	for _, msg := range collect(m.Init()) {
		if loadedMsg, ok := msg.(commands.HistoryLoadedMsg); ok {
			got = &loadedMsg
		}
	}
	if got == nil || got.ReqID != 1 {
		t.Fatalf("expected a history response for request 1, got %+v", got)
	}
	if calls := src.historyCalls(); len(calls) != 1 || !calls[0].Equal(m.lastParams) {
		t.Fatalf("Init issued %d history calls, want one for the initial params", len(calls))
	}

	m = update(t, m, *got)
	if m.fetch.Status != FetchLoaded || len(m.items) != 2 {
		t.Errorf("after load: status = %v, items = %d", m.fetch.Status, len(m.items))
	}
}

func TestNewDefaults(t *testing.T) {
	m := New(&fakeSource{}, nil)
	if m.debounce != 300*time.Millisecond {
		t.Errorf("debounce = %v, want 300ms", m.debounce)
	}
	if m.sink == nil {
		t.Error("expected a default export sink")
	}
	if m.mode != ModeList {
		t.Errorf("mode = %v, want list", m.mode)
	}
}
