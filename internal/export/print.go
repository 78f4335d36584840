package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/javiermolinar/abastecimentos/internal/format"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// PrintTitle heads the printable document.
const PrintTitle = "Histórico de Abastecimentos"

// PrintDelay is how long the document waits before opening the print dialog.
const PrintDelay = 300 * time.Millisecond

type printRow struct {
	Date        string
	ProductName string
	ProductCode string
	Quantity    string
	UnitCost    string
	TotalCost   string
	UserName    string
	Note        string
}

type printDoc struct {
	Title   string
	Rows    []printRow
	DelayMS int64
}

var printTemplate = template.Must(template.New("print").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, sans-serif; padding: 16px; }
  h1 { font-size: 18px; margin: 0 0 12px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th, td { border: 1px solid #ddd; padding: 6px 8px; text-align: left; }
  th { background: #f5f5f5; }
  td.num { text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr><th>Data</th><th>Produto</th><th>Código</th><th>Quantidade</th><th>Custo Unit.</th><th>Total Custo</th><th>Usuário</th><th>Obs.</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{.ProductName}}</td><td>{{.ProductCode}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitCost}}</td><td class="num">{{.TotalCost}}</td><td>{{.UserName}}</td><td>{{.Note}}</td></tr>
{{- end}}
</tbody>
</table>
<script>setTimeout(function () { window.print(); }, {{.DelayMS}});</script>
</body>
</html>
`))

// PrintHTML renders records as a standalone printable HTML document that
// opens the print dialog shortly after loading.
func PrintHTML(records []supply.Record, loc *time.Location) ([]byte, error) {
	doc := printDoc{
		Title:   PrintTitle,
		Rows:    make([]printRow, 0, len(records)),
		DelayMS: PrintDelay.Milliseconds(),
	}
	for _, r := range records {
		doc.Rows = append(doc.Rows, printRow{
			Date:        format.DateTime(r.CreatedAt, loc),
			ProductName: r.ProductName,
			ProductCode: r.ProductCode,
			Quantity:    format.Number(r.Quantity),
			UnitCost:    format.Currency(r.UnitCost),
			TotalCost:   format.Currency(r.TotalCost),
			UserName:    r.UserName,
			Note:        r.Note,
		})
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering print view: %w", err)
	}
	return buf.Bytes(), nil
}
