package ui

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/abastecimentos/internal/db"
	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/format"
)

// Import validation errors.
var (
	errMissingHeader = errors.New("missing header row")
	errBadHeader     = errors.New("header does not match the export format")
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Import supply records into the local store",
		Long: `Import supply records from a CSV file in the export format into the
local SQLite store. Products and users are created as needed.

Dates use the DD/MM/YYYY HH:MM:SS format in the configured timezone, and
numbers are plain decimals ("1234.5"). An empty total is computed from
quantity and unit cost.

Example:
  abastecimentos import abastecimentos_2025-01-31.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			rows, err := parseImportCSV(f, loc, time.Now())
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			count, err := store.ImportRecords(context.Background(), rows)
			if err != nil {
				return fmt.Errorf("importing records: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s\n", count, path)
			return nil
		},
	}

	return cmd
}

// parseImportCSV reads a CSV in the export layout. Rows without a date are
// stamped with now.
func parseImportCSV(r io.Reader, loc *time.Location, now time.Time) ([]db.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(export.CSVHeaders)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errMissingHeader
	}
	if err != nil {
		return nil, err
	}
	for i, want := range export.CSVHeaders {
		if strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")) != want {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", errBadHeader, i+1, header[i], want)
		}
	}

	var rows []db.ImportRow
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseImportRow(fields, loc, now)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseImportRow(fields []string, loc *time.Location, now time.Time) (db.ImportRow, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	created := now
	if fields[0] != "" {
		t, err := time.ParseInLocation(format.DateTimeLayout, fields[0], loc)
		if err != nil {
			return db.ImportRow{}, fmt.Errorf("invalid date %q", fields[0])
		}
		created = t
	}

	var nums [3]float64
	for i, field := range fields[3:6] {
		v, err := parseNumber(field)
		if err != nil {
			return db.ImportRow{}, fmt.Errorf("column %q: %w", export.CSVHeaders[i+3], err)
		}
		nums[i] = v
	}

	return db.ImportRow{
		CreatedAt:   created,
		ProductName: fields[1],
		ProductCode: fields[2],
		Quantity:    nums[0],
		UnitCost:    nums[1],
		TotalCost:   nums[2],
		UserName:    fields[6],
		Note:        fields[7],
	}, nil
}

// parseNumber accepts plain decimals. Empty means 0.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
