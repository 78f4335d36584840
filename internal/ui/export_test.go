package ui

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/abastecimentos/internal/api"
	"github.com/javiermolinar/abastecimentos/internal/config"
	"github.com/javiermolinar/abastecimentos/internal/db"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

type recordingSink struct {
	downloads []string
	prints    []string
}

func (s *recordingSink) Download(name string, _ []byte) (string, error) {
	s.downloads = append(s.downloads, name)
	return "/sink/" + name, nil
}

func (s *recordingSink) OpenPrint(name string, _ []byte) (string, error) {
	s.prints = append(s.prints, name)
	return "/sink/" + name, nil
}

func TestWriteExport(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []supply.Record{{ProductName: "Arroz <5kg>", Quantity: 1}}

	t.Run("csv to sink", func(t *testing.T) {
		sink := &recordingSink{}
		path, err := writeExport(sink, formatCSV, "", records, time.UTC, now)
		if err != nil {
			t.Fatalf("writeExport failed: %v", err)
		}
		if path != "/sink/abastecimentos_2025-03-01.csv" || len(sink.downloads) != 1 {
			t.Errorf("path = %q, downloads = %v", path, sink.downloads)
		}
	})

	t.Run("html to sink", func(t *testing.T) {
		sink := &recordingSink{}
		if _, err := writeExport(sink, formatHTML, "", records, time.UTC, now); err != nil {
			t.Fatalf("writeExport failed: %v", err)
		}
		if len(sink.prints) != 1 || len(sink.downloads) != 0 {
			t.Errorf("prints = %v, downloads = %v", sink.prints, sink.downloads)
		}
	})

	t.Run("html to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "nested", "historico.html")
		path, err := writeExport(&recordingSink{}, formatHTML, out, records, time.UTC, now)
		if err != nil {
			t.Fatalf("writeExport failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.Contains(string(data), "Arroz &lt;5kg&gt;") {
			t.Error("expected escaped product name in the document")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := writeExport(&recordingSink{}, "pdf", "", records, time.UTC, now); err == nil {
			t.Error("expected error")
		}
	})
}

func TestServeAnswersAndShutsDown(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := db.New(filepath.Join(dir, "serve.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if _, err := store.ImportRecords(ctx, []db.ImportRow{{
		CreatedAt:   time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
		ProductName: "Arroz",
		Quantity:    2,
		UnitCost:    3,
		TotalCost:   6,
	}}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	_ = store.Close()

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "serve.db")
	cfg.Export.Dir = dir
	cfg.UI.Timezone = "UTC"

	addr := freeAddr(t)
	a := NewApp(cfg)
	defer func() { _ = a.Close() }()

	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- a.serve(serveCtx, addr, "@every 1h", zap.NewNop())
	}()

	client := api.NewClient(api.Options{BaseURL: "http://" + addr, Timeout: time.Second})
	var page *supply.Page
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		page, err = client.ListHistory(ctx, supply.NewFilter(20, supply.SortNewest).Params())
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].TotalCost != 6 {
		t.Errorf("unexpected page %+v", page)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not shut down")
	}

	if _, err := http.Get("http://" + addr + "/healthz"); err == nil {
		t.Error("server still answering after shutdown")
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("finding a free port: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}
