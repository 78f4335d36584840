package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/abastecimentos/internal/format"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// Column widths of the list output. The product column takes the rest.
const (
	colDate     = 19
	colQuantity = 10
	colMoney    = 14
	colUser     = 14
	minProduct  = 16
)

func (a *App) listCmd() *cobra.Command {
	var (
		flags   historyFlags
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of supply history",
		Long: `Print one page of the supply history as a table.

Without filters, lists the most recent records. Dates are inclusive and
use the YYYY-MM-DD format.`,
		Example: `  abastecimentos list
  abastecimentos list --start=2025-01-01 --end=2025-01-31
  abastecimentos list --product=12 --sort=created_at_asc --limit=50 --page=2`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
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

			printHistory(os.Stdout, page, params, loc, termWidth())
			return nil
		},
	}

	flags.register(cmd, a.config)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// printHistory writes page as an aligned table followed by a summary line.
func printHistory(w io.Writer, page *supply.Page, params supply.Params, loc *time.Location, width int) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "Nenhum registro encontrado")
		printSummary(w, page, params)
		return
	}

	product := width - colDate - colQuantity - 2*colMoney - colUser - 5
	if product < minProduct {
		product = minProduct
	}

	header := strings.Join([]string{
		padRight("Data", colDate),
		padRight("Produto", product),
		padLeft("Quantidade", colQuantity),
		padLeft("Custo Unit.", colMoney),
		padLeft("Total", colMoney),
		padRight("Usuário", colUser),
	}, " ")
	fmt.Fprintln(w, formatHeader(header))

	for _, r := range page.Items {
		name := r.ProductName
		if r.ProductCode != "" {
			name += " (" + r.ProductCode + ")"
		}
		user := r.UserName
		if user == "" {
			user = "-"
		}
		fmt.Fprintln(w, strings.Join([]string{
			padRight(format.DateTime(r.CreatedAt, loc), colDate),
			padRight(name, product),
			padLeft(format.Number(r.Quantity), colQuantity),
			padLeft(format.BRL(r.UnitCost), colMoney),
			formatTotal(padLeft(format.BRL(r.TotalCost), colMoney)),
			padRight(user, colUser),
		}, " "))
		if note := strings.TrimSpace(r.Note); note != "" {
			fmt.Fprintln(w, formatMuted(padRight("", colDate)+" "+padRight(flattenNote(note), max(width-colDate-1, 10))))
		}
	}

	fmt.Fprintln(w)
	printSummary(w, page, params)
}

func printSummary(w io.Writer, page *supply.Page, params supply.Params) {
	n := len(page.Items)
	parts := []string{
		fmt.Sprintf("%d %s", n, format.Plural(n, "registro", "registros")),
		fmt.Sprintf("Página %d", params.Page),
		fmt.Sprintf("%d por página", params.PageSize),
		params.Sort.Label(),
	}
	if page.HasNext {
		parts = append(parts, formatCode(fmt.Sprintf("próxima: --page=%d", params.Page+1)))
	}
	fmt.Fprintln(w, formatMuted(strings.Join(parts, " · ")))
}

func flattenNote(note string) string {
	return strings.Join(strings.Fields(note), " ")
}
