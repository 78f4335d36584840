package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

func TestCreateProduct(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.CreateProduct(context.Background(), "Arroz 5kg", "ARZ5")
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if id == 0 {
		t.Error("expected ID to be set after insert")
	}
}

func TestCreateProduct_EmptyName(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.CreateProduct(context.Background(), "  ", "X")
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestEnsureProduct_ReusesByCode(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.EnsureProduct(ctx, "Arroz", "ARZ")
	if err != nil {
		t.Fatalf("EnsureProduct failed: %v", err)
	}
	second, err := repo.EnsureProduct(ctx, "Arroz tipo 1", "ARZ")
	if err != nil {
		t.Fatalf("EnsureProduct failed: %v", err)
	}
	if first != second {
		t.Errorf("expected same product id, got %d and %d", first, second)
	}

	other, err := repo.EnsureProduct(ctx, "Feijão", "")
	if err != nil {
		t.Fatalf("EnsureProduct failed: %v", err)
	}
	if other == first {
		t.Error("expected a new product for a different name without code")
	}
}

func TestEnsureUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.EnsureUser(ctx, "Maria")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	b, err := repo.EnsureUser(ctx, "Maria")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if a != b {
		t.Errorf("expected same user id, got %d and %d", a, b)
	}
}

func TestCreateRecord_ComputesTotal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	productID := mustProduct(t, repo, "Açúcar", "ACU")
	if _, err := repo.CreateRecord(ctx, NewRecord{
		ProductID: productID,
		Quantity:  4,
		UnitCost:  2.5,
		CreatedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	page := mustList(t, repo, supply.NewFilter(20, supply.SortNewest).Params())
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 record, got %d", len(page.Items))
	}
	r := page.Items[0]
	if r.TotalCost != 10 {
		t.Errorf("expected total 10, got %v", r.TotalCost)
	}
	if r.ProductName != "Açúcar" || r.ProductCode != "ACU" {
		t.Errorf("unexpected product %q (%q)", r.ProductName, r.ProductCode)
	}
	if r.UserName != "" {
		t.Errorf("expected empty user, got %q", r.UserName)
	}
	if !r.CreatedAt.Equal(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected created at %v", r.CreatedAt)
	}
}

func TestCreateRecord_ProductNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.CreateRecord(context.Background(), NewRecord{ProductID: 42, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestListHistory_SortAndPaging(t *testing.T) {
	repo := newTestRepo(t)
	seedRecords(t, repo, 5)

	params := supply.Params{Page: 1, PageSize: 2, Sort: supply.SortNewest}
	page := mustList(t, repo, params)
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Items))
	}
	if !page.HasNext {
		t.Error("expected has_next on first page")
	}
	if page.Items[0].Note != "r5" || page.Items[1].Note != "r4" {
		t.Errorf("unexpected order: %q, %q", page.Items[0].Note, page.Items[1].Note)
	}

	params.Page = 3
	page = mustList(t, repo, params)
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 record on last page, got %d", len(page.Items))
	}
	if page.HasNext {
		t.Error("expected no next page on last page")
	}

	params = supply.Params{Page: 1, PageSize: 10, Sort: supply.SortOldest}
	page = mustList(t, repo, params)
	if page.Items[0].Note != "r1" {
		t.Errorf("expected oldest first, got %q", page.Items[0].Note)
	}
}

func TestListHistory_Filters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rice := mustProduct(t, repo, "Arroz", "ARZ")
	beans := mustProduct(t, repo, "Feijão", "FEI")
	maria, err := repo.EnsureUser(ctx, "Maria")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	records := []NewRecord{
		{ProductID: rice, UserID: &maria, Quantity: 1, CreatedAt: time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)},
		{ProductID: rice, Quantity: 2, CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)},
		{ProductID: beans, UserID: &maria, Quantity: 3, CreatedAt: time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC)},
		{ProductID: beans, Quantity: 4, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range records {
		if _, err := repo.CreateRecord(ctx, r); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	str := func(s string) *string { return &s }
	tests := []struct {
		name   string
		params supply.Params
		want   []float64 // quantities, oldest first
	}{
		{
			name:   "no filters",
			params: supply.Params{},
			want:   []float64{1, 2, 3, 4},
		},
		{
			name:   "start date inclusive",
			params: supply.Params{StartDate: str("2024-02-01")},
			want:   []float64{2, 3, 4},
		},
		{
			name:   "end date includes the whole day",
			params: supply.Params{EndDate: str("2024-02-15")},
			want:   []float64{1, 2, 3},
		},
		{
			name:   "date range",
			params: supply.Params{StartDate: str("2024-02-01"), EndDate: str("2024-02-29")},
			want:   []float64{2, 3},
		},
		{
			name:   "product",
			params: supply.Params{ProductID: str(idString(beans))},
			want:   []float64{3, 4},
		},
		{
			name:   "user",
			params: supply.Params{UserID: str(idString(maria))},
			want:   []float64{1, 3},
		},
		{
			name:   "product and user",
			params: supply.Params{ProductID: str(idString(rice)), UserID: str(idString(maria))},
			want:   []float64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.params
			p.Page, p.PageSize, p.Sort = 1, 50, supply.SortOldest
			page := mustList(t, repo, p)
			if len(page.Items) != len(tt.want) {
				t.Fatalf("expected %d records, got %d", len(tt.want), len(page.Items))
			}
			for i, r := range page.Items {
				if r.Quantity != tt.want[i] {
					t.Errorf("record %d: expected quantity %v, got %v", i, tt.want[i], r.Quantity)
				}
			}
		})
	}
}

func TestListHistory_InvalidParams(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ListHistory(context.Background(), supply.Params{Page: 0, PageSize: 20, Sort: supply.SortNewest})
	if !errors.Is(err, supply.ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage, got %v", err)
	}
}

func TestListHistory_EmptyReturnsEmptySlice(t *testing.T) {
	repo := newTestRepo(t)

	page := mustList(t, repo, supply.NewFilter(10, supply.SortNewest).Params())
	if page.Items == nil {
		t.Error("expected empty slice, got nil")
	}
	if page.HasNext {
		t.Error("expected no next page")
	}
}

func TestSearchProducts(t *testing.T) {
	repo := newTestRepo(t)
	mustProduct(t, repo, "Arroz Branco", "ARZ1")
	mustProduct(t, repo, "arroz integral", "ARZ2")
	mustProduct(t, repo, "Feijão", "FEI")
	mustProduct(t, repo, "Desconto 100%", "DSC")

	tests := []struct {
		query string
		want  int
	}{
		{"arroz", 2},
		{"ARZ", 2},
		{"fei", 1},
		{"100%", 1},
		{"%", 1},
		{"zzz", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			products, err := repo.SearchProducts(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("SearchProducts failed: %v", err)
			}
			if len(products) != tt.want {
				t.Errorf("expected %d products, got %d", tt.want, len(products))
			}
		})
	}
}

func TestSearchProducts_OrderedByName(t *testing.T) {
	repo := newTestRepo(t)
	mustProduct(t, repo, "Leite B", "L2")
	mustProduct(t, repo, "Leite A", "L1")

	products, err := repo.SearchProducts(context.Background(), "leite")
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(products) != 2 || products[0].Name != "Leite A" {
		t.Errorf("unexpected products %+v", products)
	}
	if products[0].Label() != "Leite A (L1)" {
		t.Errorf("unexpected label %q", products[0].Label())
	}
}

func TestImportRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rows := []ImportRow{
		{CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), ProductName: "Café", ProductCode: "CAF", Quantity: 2, UnitCost: 15, UserName: "João", Note: "lote 1"},
		{CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC), ProductName: "Café", ProductCode: "CAF", Quantity: 1, UnitCost: 15, TotalCost: 14},
	}

	n, err := repo.ImportRecords(ctx, rows)
	if err != nil {
		t.Fatalf("ImportRecords failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	products, err := repo.SearchProducts(ctx, "caf")
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected product to be created once, got %d", len(products))
	}

	page := mustList(t, repo, supply.Params{Page: 1, PageSize: 10, Sort: supply.SortOldest})
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Items))
	}
	if page.Items[0].TotalCost != 30 || page.Items[0].UserName != "João" {
		t.Errorf("unexpected first record %+v", page.Items[0])
	}
	if page.Items[1].TotalCost != 14 {
		t.Errorf("expected explicit total to be kept, got %v", page.Items[1].TotalCost)
	}
}

func TestImportRecords_RollsBackOnError(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rows := []ImportRow{
		{ProductName: "Café", ProductCode: "CAF", Quantity: 1},
		{ProductName: "", ProductCode: "", Quantity: 1},
	}

	if _, err := repo.ImportRecords(ctx, rows); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	page := mustList(t, repo, supply.NewFilter(10, supply.SortNewest).Params())
	if len(page.Items) != 0 {
		t.Errorf("expected no records after rollback, got %d", len(page.Items))
	}
}

func seedRecords(t *testing.T, repo *SQLite, n int) {
	t.Helper()

	productID := mustProduct(t, repo, "Arroz", "ARZ")
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		if _, err := repo.CreateRecord(context.Background(), NewRecord{
			ProductID: productID,
			Quantity:  float64(i),
			UnitCost:  1,
			Note:      "r" + idString(int64(i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}
}

func mustProduct(t *testing.T, repo *SQLite, name, code string) int64 {
	t.Helper()

	id, err := repo.CreateProduct(context.Background(), name, code)
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	return id
}

func mustList(t *testing.T, repo *SQLite, params supply.Params) *supply.Page {
	t.Helper()

	page, err := repo.ListHistory(context.Background(), params)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	return page
}

func idString(id int64) string {
	return supply.ID(fmt.Sprint(id)).String()
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
