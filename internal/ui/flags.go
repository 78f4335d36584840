package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/abastecimentos/internal/config"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// historyFlags are the filter flags shared by list and export.
type historyFlags struct {
	start    string
	end      string
	product  string
	user     string
	page     int
	pageSize int
	sort     string
}

func (f *historyFlags) register(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.product, "product", "", "Product ID")
	cmd.Flags().StringVar(&f.user, "user", "", "User ID")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "limit", cfg.History.PageSize, "Records per page")
	cmd.Flags().StringVar(&f.sort, "sort", string(cfg.Sort()), "Order: created_at_desc or created_at_asc")
}

// params validates the flags and derives the history query. Unlike the
// interactive view, a malformed date is an error instead of being ignored.
func (f historyFlags) params() (supply.Params, error) {
	for _, d := range []string{f.start, f.end} {
		if d == "" {
			continue
		}
		if _, err := supply.ParseDate(d); err != nil {
			return supply.Params{}, fmt.Errorf("%w: %q", err, d)
		}
	}

	sort, err := supply.ParseSort(f.sort)
	if err != nil {
		return supply.Params{}, err
	}

	filter := supply.Filter{
		StartDate: f.start,
		EndDate:   f.end,
		ProductID: supply.ID(f.product),
		UserID:    f.user,
		Sort:      sort,
		Page:      f.page,
		PageSize:  f.pageSize,
	}
	if f.page < 1 {
		return supply.Params{}, supply.ErrInvalidPage
	}
	if f.pageSize < 1 || f.pageSize > supply.MaxPageSize {
		return supply.Params{}, supply.ErrInvalidPageSize
	}
	params := filter.Params()
	if err := params.Validate(); err != nil {
		return supply.Params{}, err
	}
	return params, nil
}
