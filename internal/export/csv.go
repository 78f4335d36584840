// Package export renders history pages as CSV or printable HTML and hands
// the result to a sink.
package export

import (
	"strings"
	"time"

	"github.com/javiermolinar/abastecimentos/internal/format"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// CSVHeaders are the column titles of the CSV export.
var CSVHeaders = []string{
	"Data", "Produto", "Código", "Quantidade", "Custo Unitário", "Total Custo", "Usuário", "Observação",
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// CSV encodes records as comma-separated text, one line per record after
// the header line.
func CSV(records []supply.Record, loc *time.Location) []byte {
	var b strings.Builder
	writeCSVRow(&b, CSVHeaders)
	for _, r := range records {
		b.WriteByte('\n')
		writeCSVRow(&b, csvFields(r, loc))
	}
	return []byte(b.String())
}

func csvFields(r supply.Record, loc *time.Location) []string {
	return []string{
		format.DateTime(r.CreatedAt, loc),
		r.ProductName,
		r.ProductCode,
		format.Raw(r.Quantity),
		format.Raw(r.UnitCost),
		format.Raw(r.TotalCost),
		r.UserName,
		FlattenNote(r.Note),
	}
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeCSV(field))
	}
}

// FlattenNote replaces line breaks with spaces.
func FlattenNote(note string) string {
	return newlineReplacer.Replace(note)
}

// EscapeCSV quotes a field containing a comma, quote or line break and
// doubles its inner quotes. Other fields are returned unchanged.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// CSVFilename is the download name for an export made at now.
func CSVFilename(now time.Time) string {
	return "abastecimentos_" + now.UTC().Format(supply.DateLayout) + ".csv"
}

// PrintFilename is the file name used for the printable document.
func PrintFilename(now time.Time) string {
	return "abastecimentos_" + now.UTC().Format("2006-01-02_150405") + ".html"
}
