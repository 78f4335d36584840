// Package format renders numbers, money and timestamps the way the
// history view shows them (pt-BR conventions).
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DateTimeLayout is the pt-BR date and time layout.
const DateTimeLayout = "02/01/2006 15:04:05"

const (
	integerFormat  = "#.###,"
	fractionFormat = "#.###,###"
	currencyFormat = "#.###,##"
)

// Number formats a quantity with thousands separators. Fractions keep up
// to three decimals, without trailing zeros.
func Number(v float64) string {
	if v == float64(int64(v)) {
		return humanize.FormatFloat(integerFormat, v)
	}
	s := humanize.FormatFloat(fractionFormat, v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ",")
}

// Currency formats a monetary value with two decimals.
func Currency(v float64) string {
	return humanize.FormatFloat(currencyFormat, v)
}

// BRL prefixes Currency with the real symbol.
func BRL(v float64) string {
	return "R$ " + Currency(v)
}

// Raw formats a number in its shortest plain decimal form, as exported to CSV.
func Raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DateTime formats t in loc. The zero time renders as an empty string.
func DateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateTimeLayout)
}

// Plural picks the singular or plural word for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Location resolves a timezone name. Empty and "Local" map to time.Local.
func Location(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
