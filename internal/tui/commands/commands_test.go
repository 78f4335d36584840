package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

type fakeSource struct {
	page     *supply.Page
	products []supply.Product
	err      error
}

func (f fakeSource) ListHistory(context.Context, supply.Params) (*supply.Page, error) {
	return f.page, f.err
}

func (f fakeSource) SearchProducts(context.Context, string) ([]supply.Product, error) {
	return f.products, f.err
}

type fakeSink struct {
	err error
}

func (f fakeSink) Download(name string, _ []byte) (string, error) {
	return "/tmp/" + name, f.err
}

func (f fakeSink) OpenPrint(name string, _ []byte) (string, error) {
	return "/tmp/" + name, f.err
}

func TestLoadHistory(t *testing.T) {
	params := supply.NewFilter(20, supply.SortNewest).Params()
	src := fakeSource{page: &supply.Page{Items: []supply.Record{{ID: "1"}}, HasNext: true}}

	msg := LoadHistory(src, params, 7)()
	loaded, ok := msg.(HistoryLoadedMsg)
	if !ok {
		t.Fatalf("expected HistoryLoadedMsg, got %T", msg)
	}
	if loaded.ReqID != 7 || loaded.Err != nil || len(loaded.Page.Items) != 1 || !loaded.Page.HasNext {
		t.Errorf("unexpected message %+v", loaded)
	}
	if !loaded.Params.Equal(params) {
		t.Error("expected params to be echoed")
	}
}

func TestLoadHistory_Error(t *testing.T) {
	msg := LoadHistory(fakeSource{err: errors.New("boom")}, supply.Params{}, 3)()
	loaded := msg.(HistoryLoadedMsg)
	if loaded.Err == nil || loaded.ReqID != 3 {
		t.Errorf("unexpected message %+v", loaded)
	}
}

func TestLoadHistory_NilPage(t *testing.T) {
	msg := LoadHistory(fakeSource{}, supply.Params{}, 1)()
	if loaded := msg.(HistoryLoadedMsg); loaded.Page == nil {
		t.Error("expected empty page instead of nil")
	}
}

func TestSearchProducts_Truncates(t *testing.T) {
	products := make([]supply.Product, 15)
	msg := SearchProducts(fakeSource{products: products}, 4, "arr")()
	found := msg.(ProductsFoundMsg)
	if found.Seq != 4 || found.Query != "arr" {
		t.Errorf("unexpected message %+v", found)
	}
	if len(found.Products) != supply.SuggestionLimit {
		t.Errorf("expected %d products, got %d", supply.SuggestionLimit, len(found.Products))
	}
}

func TestDebounceSearch(t *testing.T) {
	msg := DebounceSearch(9, "coca", time.Millisecond)()
	due, ok := msg.(SearchDueMsg)
	if !ok || due.Seq != 9 || due.Query != "coca" {
		t.Errorf("unexpected message %#v", msg)
	}
}

func TestExportCSV(t *testing.T) {
	msg := ExportCSV(fakeSink{}, "a.csv", []byte("x"))().(ExportDoneMsg)
	if msg.Err != nil || msg.Path != "/tmp/a.csv" || msg.Kind != "csv" {
		t.Errorf("unexpected message %+v", msg)
	}

	msg = ExportCSV(fakeSink{err: errors.New("full")}, "a.csv", nil)().(ExportDoneMsg)
	if msg.Err == nil {
		t.Error("expected error")
	}
}

func TestPrint(t *testing.T) {
	msg := Print(fakeSink{}, "p.html", []byte("<html>"))().(ExportDoneMsg)
	if msg.Err != nil || msg.Kind != "print" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestCopyText(t *testing.T) {
	var got string
	msg := CopyText(func(s string) error { got = s; return nil }, "csv")().(ExportDoneMsg)
	if msg.Err != nil || got != "csv" {
		t.Errorf("unexpected message %+v, copied %q", msg, got)
	}

	msg = CopyText(func(string) error { return errors.New("no display") }, "csv")().(ExportDoneMsg)
	if msg.Err == nil {
		t.Error("expected error")
	}
}
