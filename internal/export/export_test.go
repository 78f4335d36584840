package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

func sampleRecord() supply.Record {
	return supply.Record{
		ID:          "1",
		CreatedAt:   time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		ProductName: "Coca-Cola 2L",
		ProductCode: "789",
		Quantity:    1234,
		UnitCost:    7.5,
		TotalCost:   9255,
		UserName:    "Ana",
		Note:        "ok",
	}
}

func TestCSV_HeaderAndRow(t *testing.T) {
	got := string(CSV([]supply.Record{sampleRecord()}, time.UTC))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "Data,Produto,Código,Quantidade,Custo Unitário,Total Custo,Usuário,Observação" {
		t.Errorf("header = %q", lines[0])
	}
	want := "15/01/2025 10:30:00,Coca-Cola 2L,789,1234,7.5,9255,Ana,ok"
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestCSV_NoteEscaping(t *testing.T) {
	r := sampleRecord()
	r.Note = "say \"hi\"\nagain"

	got := string(CSV([]supply.Record{r}, time.UTC))
	if !strings.HasSuffix(got, `,"say ""hi"" again"`) {
		t.Errorf("expected quoted note cell, got %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("note newline must not leak into the output: %q", got)
	}
}

func TestCSV_EmptyPage(t *testing.T) {
	got := string(CSV(nil, time.UTC))
	if strings.Contains(got, "\n") {
		t.Errorf("empty page should only have the header, got %q", got)
	}
}

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`5" pipe`, `"5"" pipe"`},
		{"line\nbreak", "\"line\nbreak\""},
		{"carriage\rreturn", "\"carriage\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeCSV(tt.in); got != tt.want {
			t.Errorf("EscapeCSV(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlattenNote(t *testing.T) {
	if got := FlattenNote("a\r\nb\nc\rd"); got != "a b c d" {
		t.Errorf("FlattenNote = %q", got)
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("BRT", -3*60*60))
	if got := CSVFilename(now); got != "abastecimentos_2025-03-10.csv" {
		t.Errorf("CSVFilename = %q", got)
	}
	if got := PrintFilename(now); got != "abastecimentos_2025-03-10_023000.html" {
		t.Errorf("PrintFilename = %q", got)
	}
}

func TestPrintHTML(t *testing.T) {
	r := sampleRecord()
	r.Note = "<b>urgente</b>"

	out, err := PrintHTML([]supply.Record{r}, time.UTC)
	if err != nil {
		t.Fatalf("PrintHTML failed: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<!doctype html>",
		"<h1>Histórico de Abastecimentos</h1>",
		"<td>15/01/2025 10:30:00</td>",
		`<td class="num">1.234</td>`,
		`<td class="num">7,50</td>`,
		`<td class="num">9.255,00</td>`,
		"&lt;b&gt;urgente&lt;/b&gt;",
		"window.print()",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected print view to contain %q", want)
		}
	}
	if strings.Contains(html, "<b>urgente</b>") {
		t.Error("note markup must be escaped")
	}
}

func TestPrintHTML_RowCount(t *testing.T) {
	out, err := PrintHTML([]supply.Record{sampleRecord(), sampleRecord(), sampleRecord()}, time.UTC)
	if err != nil {
		t.Fatalf("PrintHTML failed: %v", err)
	}
	// One header row plus three data rows.
	if got := strings.Count(string(out), "<tr>"); got != 4 {
		t.Errorf("expected 4 rows, got %d", got)
	}
}

func TestFileSink_Download(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewFileSink(dir, false)

	path, err := sink.Download("abastecimentos_2025-01-15.csv", []byte("a,b"))
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if path != filepath.Join(dir, "abastecimentos_2025-01-15.csv") {
		t.Errorf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "a,b" {
		t.Errorf("export content = %q", data)
	}
}

func TestFileSink_OpenPrint(t *testing.T) {
	dir := t.TempDir()
	var opened string
	sink := NewFileSink(dir, true, WithOpener(func(path string) error {
		opened = path
		return nil
	}))

	path, err := sink.OpenPrint("print.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("OpenPrint failed: %v", err)
	}
	if opened != path {
		t.Errorf("opened %q, want %q", opened, path)
	}
}

func TestFileSink_OpenPrintDisabled(t *testing.T) {
	called := false
	sink := NewFileSink(t.TempDir(), false, WithOpener(func(string) error {
		called = true
		return nil
	}))

	if _, err := sink.OpenPrint("print.html", []byte("x")); err != nil {
		t.Fatalf("OpenPrint failed: %v", err)
	}
	if called {
		t.Error("opener must not run when opening is disabled")
	}
}

func TestFileSink_OpenerError(t *testing.T) {
	sink := NewFileSink(t.TempDir(), true, WithOpener(func(string) error {
		return errors.New("no browser")
	}))

	path, err := sink.OpenPrint("print.html", []byte("x"))
	if err == nil {
		t.Fatal("expected opener error")
	}
	if path == "" {
		t.Error("path should still be reported when opening fails")
	}
}
