package supply

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for filter dates.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidSort      = errors.New("sort must be 'created_at_desc' or 'created_at_asc'")
	ErrInvalidPage      = errors.New("page must be 1 or greater")
	ErrInvalidPageSize  = errors.New("page size out of range")
)

// Sort is the ordering requested from the backend.
type Sort string

const (
	SortNewest Sort = "created_at_desc"
	SortOldest Sort = "created_at_asc"
)

// Valid reports whether s is a known sort key.
func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortOldest:
		return true
	default:
		return false
	}
}

// Toggle returns the opposite ordering.
func (s Sort) Toggle() Sort {
	if s == SortOldest {
		return SortNewest
	}
	return SortOldest
}

// Label is the human-readable name of the ordering.
func (s Sort) Label() string {
	if s == SortOldest {
		return "Mais antigos"
	}
	return "Mais recentes"
}

// ParseSort parses a sort key. An empty string means SortNewest.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortNewest, nil
	}
	sort := Sort(strings.ToLower(strings.TrimSpace(s)))
	if !sort.Valid() {
		return "", ErrInvalidSort
	}
	return sort, nil
}

// PageSizes are the page sizes offered by the view.
var PageSizes = []int{10, 20, 50}

// MaxPageSize bounds the page size accepted by the backend.
const MaxPageSize = 100

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// NextPageSize cycles through PageSizes. Sizes outside the list restart it.
func NextPageSize(current int) int {
	for i, size := range PageSizes {
		if size == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

// ParseDate parses a YYYY-MM-DD filter date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Filter is the editable filter state of the history view.
type Filter struct {
	StartDate    string // YYYY-MM-DD as typed, may be partial
	EndDate      string // YYYY-MM-DD as typed, may be partial
	ProductID    ID
	ProductQuery string
	UserID       string
	Sort         Sort
	Page         int // 1-based
	PageSize     int
}

// NewFilter returns an empty filter on page 1.
func NewFilter(pageSize int, sort Sort) Filter {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if !sort.Valid() {
		sort = SortNewest
	}
	return Filter{Sort: sort, Page: 1, PageSize: pageSize}
}

// Clear resets every filter field and the page. Page size and sort are kept.
func (f *Filter) Clear() {
	f.StartDate = ""
	f.EndDate = ""
	f.ProductID = ""
	f.ProductQuery = ""
	f.UserID = ""
	f.Page = 1
}

// Params derives the query parameters. Empty fields are left unset, and
// dates that do not parse yet count as empty.
func (f Filter) Params() Params {
	p := Params{
		Page:     max(f.Page, 1),
		PageSize: f.PageSize,
		Sort:     f.Sort,
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if !p.Sort.Valid() {
		p.Sort = SortNewest
	}
	p.StartDate = optionalDate(f.StartDate)
	p.EndDate = optionalDate(f.EndDate)
	p.ProductID = optionalString(string(f.ProductID))
	p.UserID = optionalString(f.UserID)
	return p
}

func optionalDate(s string) *string {
	s = strings.TrimSpace(s)
	if _, err := ParseDate(s); err != nil {
		return nil
	}
	return &s
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Params is the history query sent to the backend. Nil pointers are unset.
type Params struct {
	StartDate *string
	EndDate   *string
	ProductID *string
	UserID    *string
	Page      int
	PageSize  int
	Sort      Sort
}

// Equal reports whether both parameter sets request the same page.
func (p Params) Equal(o Params) bool {
	return equalOpt(p.StartDate, o.StartDate) &&
		equalOpt(p.EndDate, o.EndDate) &&
		equalOpt(p.ProductID, o.ProductID) &&
		equalOpt(p.UserID, o.UserID) &&
		p.Page == o.Page &&
		p.PageSize == o.PageSize &&
		p.Sort == o.Sort
}

func equalOpt(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Values encodes the parameters with the backend's query keys.
func (p Params) Values() url.Values {
	v := url.Values{}
	setOpt(v, "data_inicial", p.StartDate)
	setOpt(v, "data_final", p.EndDate)
	setOpt(v, "produto_id", p.ProductID)
	setOpt(v, "usuario_id", p.UserID)
	v.Set("pagina", strconv.Itoa(p.Page))
	v.Set("limite", strconv.Itoa(p.PageSize))
	v.Set("ordenacao", string(p.Sort))
	return v
}

func setOpt(v url.Values, key string, val *string) {
	if val != nil {
		v.Set(key, *val)
	}
}

// Offset is the number of records skipped before this page.
func (p Params) Offset() int {
	return (max(p.Page, 1) - 1) * p.PageSize
}

// Validate checks the parameters the way the backend does.
func (p Params) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	if !p.Sort.Valid() {
		return ErrInvalidSort
	}
	for _, d := range []*string{p.StartDate, p.EndDate} {
		if d == nil {
			continue
		}
		if _, err := ParseDate(*d); err != nil {
			return err
		}
	}
	return nil
}
