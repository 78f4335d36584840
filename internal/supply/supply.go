// Package supply defines the core domain types for the restocking history.
package supply

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies a record, product or user. The backend sends ids either as
// JSON numbers or strings; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id text.
func (id ID) String() string {
	return string(id)
}

// Number is a numeric field the backend may send as a JSON number, a
// numeric string or null. Null and the empty string decode as 0.
type Number float64

// UnmarshalJSON accepts a JSON number, numeric string or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("decoding number: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*n = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("decoding number %q: %w", text, err)
	}
	*n = Number(f)
	return nil
}

// Record is one supply transaction line as returned by the history API.
type Record struct {
	ID          ID        `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName string    `json:"produto_nome"`
	ProductCode string    `json:"codigo"`
	Quantity    float64   `json:"quantidade"`
	UnitCost    float64   `json:"custo_unitario"`
	TotalCost   float64   `json:"total_custo"`
	UserName    string    `json:"usuario_nome"`
	Note        string    `json:"observacao"`
}

// UnmarshalJSON decodes a record, tolerating null or quoted numbers and empty or
// date-only timestamps.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          ID     `json:"id"`
		CreatedAt   string `json:"created_at"`
		ProductName string `json:"produto_nome"`
		ProductCode string `json:"codigo"`
		Quantity    Number `json:"quantidade"`
		UnitCost    Number `json:"custo_unitario"`
		TotalCost   Number `json:"total_custo"`
		UserName    string `json:"usuario_nome"`
		Note        string `json:"observacao"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	createdAt, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return err
	}

	*r = Record{
		ID:          raw.ID,
		CreatedAt:   createdAt,
		ProductName: raw.ProductName,
		ProductCode: raw.ProductCode,
		Quantity:    float64(raw.Quantity),
		UnitCost:    float64(raw.UnitCost),
		TotalCost:   float64(raw.TotalCost),
		UserName:    raw.UserName,
		Note:        raw.Note,
	}
	return nil
}

// timestampLayouts are tried in order when decoding created_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseTimestamp parses the timestamp formats the backend is known to emit.
// An empty string yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Product is a product suggestion used by the autocomplete.
type Product struct {
	ID   ID     `json:"id"`
	Name string `json:"nome"`
	Code string `json:"codigo"`
}

// Label renders the product the way the filter field displays a selection:
// "name (code)", or just the name when there is no code.
func (p Product) Label() string {
	if p.Name == "" {
		return ""
	}
	if p.Code == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Code)
}

// Page is one page of history results.
type Page struct {
	Items   []Record `json:"items"`
	HasNext bool     `json:"has_next"`
}
