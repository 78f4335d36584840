package view

// RecordRow is a supply record with every field already formatted.
type RecordRow struct {
	Date        string
	ProductName string
	ProductCode string
	Quantity    string
	UnitCost    string
	TotalCost   string
	UserName    string
	Note        string
}

// Product renders the product name with its code, when present.
func (r RecordRow) Product() string {
	if r.ProductCode == "" {
		return r.ProductName
	}
	return r.ProductName + " (" + r.ProductCode + ")"
}

// User renders the user name or a dash.
func (r RecordRow) User() string {
	if r.UserName == "" {
		return "-"
	}
	return r.UserName
}

// HistoryHeaders are the column titles of the wide layout.
var HistoryHeaders = []string{"Data", "Produto", "Quantidade", "Custo Unit.", "Total", "Usuário"}

// numericColumns marks the right-aligned columns of HistoryHeaders.
var numericColumns = map[int]bool{2: true, 3: true, 4: true}

// IsNumericColumn reports whether a history column holds a number.
func IsNumericColumn(col int) bool {
	return numericColumns[col]
}

// HistoryCells returns the table cells of a row in HistoryHeaders order.
func HistoryCells(r RecordRow) []string {
	return []string{r.Date, r.Product(), r.Quantity, r.UnitCost, r.TotalCost, r.User()}
}

// VisibleWindow returns the [start, end) range of n items that fits in
// capacity slots while keeping cursor visible.
func VisibleWindow(n, cursor, capacity int) (int, int) {
	if capacity <= 0 || n <= 0 {
		return 0, 0
	}
	if n <= capacity {
		return 0, n
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= n {
		cursor = n - 1
	}

	start := cursor - capacity/2
	if start < 0 {
		start = 0
	}
	if start+capacity > n {
		start = n - capacity
	}
	return start, start + capacity
}
