package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// Export formats.
const (
	formatCSV  = "csv"
	formatHTML = "html"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		flags  historyFlags
		kind   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one page of supply history",
		Long: `Export one page of the supply history as CSV or as a printable HTML
document.

Files are written to the export directory unless --output is given. The
HTML document opens the print dialog when viewed in a browser.`,
		Example: `  abastecimentos export
  abastecimentos export --format=html --start=2025-01-01
  abastecimentos export --output=janeiro.csv --limit=100`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := flags.params()
			if err != nil {
				return err
			}
			src, err := a.historySource()
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}

			page, err := src.ListHistory(context.Background(), params)
			if err != nil {
				return fmt.Errorf("listing history: %w", err)
			}

			path, err := writeExport(a.sink(), kind, output, page.Items, loc, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(page.Items), path)
			return nil
		},
	}

	flags.register(cmd, a.config)
	cmd.Flags().StringVar(&kind, "format", formatCSV, "Output format: csv or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to the export directory)")

	return cmd
}

// writeExport renders records in kind and writes them to output, or hands
// them to sink when output is empty.
func writeExport(sink export.Sink, kind, output string, records []supply.Record, loc *time.Location, now time.Time) (string, error) {
	var (
		data []byte
		name string
	)
	switch kind {
	case formatCSV:
		data = export.CSV(records, loc)
		name = export.CSVFilename(now)
	case formatHTML:
		html, err := export.PrintHTML(records, loc)
		if err != nil {
			return "", fmt.Errorf("rendering print document: %w", err)
		}
		data = html
		name = export.PrintFilename(now)
	default:
		return "", fmt.Errorf("unknown format %q (want %s or %s)", kind, formatCSV, formatHTML)
	}

	if output != "" {
		path, err := resolvePath(output)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, nil
	}

	if kind == formatHTML {
		return sink.OpenPrint(name, data)
	}
	return sink.Download(name, data)
}
