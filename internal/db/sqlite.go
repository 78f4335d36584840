// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// timestampLayout keeps created_at sortable as text.
const timestampLayout = "2006-01-02T15:04:05Z"

// productSearchLimit bounds product lookups; callers truncate further.
const productSearchLimit = 50

// Domain errors.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("name cannot be empty")
)

// SQLite implements supply.Source using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// NewRecord holds the fields needed to record a supply.
type NewRecord struct {
	ProductID int64
	UserID    *int64 // optional
	Quantity  float64
	UnitCost  float64
	TotalCost float64 // computed from quantity and unit cost when zero
	Note      string
	CreatedAt time.Time // defaults to now
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateProduct adds a product and returns its id.
func (s *SQLite) CreateProduct(ctx context.Context, name, code string) (int64, error) {
	return createProduct(ctx, s.db, name, code)
}

func createProduct(ctx context.Context, q querier, name, code string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO produtos (nome, codigo) VALUES (?, ?)`,
		name, strings.TrimSpace(code),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// EnsureProduct returns the id of the product with the given code, or with
// the given name when code is empty, creating it if needed.
func (s *SQLite) EnsureProduct(ctx context.Context, name, code string) (int64, error) {
	return ensureProduct(ctx, s.db, name, code)
}

func ensureProduct(ctx context.Context, q querier, name, code string) (int64, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)

	var (
		query string
		arg   string
	)
	if code != "" {
		query, arg = `SELECT id FROM produtos WHERE codigo = ? ORDER BY id LIMIT 1`, code
	} else {
		query, arg = `SELECT id FROM produtos WHERE nome = ? AND codigo = '' ORDER BY id LIMIT 1`, name
	}

	var id int64
	err := q.QueryRowContext(ctx, query, arg).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("querying product: %w", err)
	}
	return createProduct(ctx, q, name, code)
}

// EnsureUser returns the id of the user with the given name, creating it if needed.
func (s *SQLite) EnsureUser(ctx context.Context, name string) (int64, error) {
	return ensureUser(ctx, s.db, name)
}

func ensureUser(ctx context.Context, q querier, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}

	if _, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO usuarios (nome) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, `SELECT id FROM usuarios WHERE nome = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("querying user: %w", err)
	}
	return id, nil
}

// CreateRecord stores a supply record and returns its id.
// Returns ErrProductNotFound if the product does not exist.
func (s *SQLite) CreateRecord(ctx context.Context, r NewRecord) (int64, error) {
	return s.createRecord(ctx, s.db, r)
}

func (s *SQLite) createRecord(ctx context.Context, q querier, r NewRecord) (int64, error) {
	var exists int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM produtos WHERE id = ?`, r.ProductID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %d", ErrProductNotFound, r.ProductID)
	}
	if err != nil {
		return 0, fmt.Errorf("checking product: %w", err)
	}

	total := r.TotalCost
	if total == 0 {
		total = r.Quantity * r.UnitCost
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO abastecimentos (
			produto_id, usuario_id, quantidade, custo_unitario, total_custo, observacao, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		r.ProductID,
		r.UserID,
		r.Quantity,
		r.UnitCost,
		total,
		r.Note,
		createdAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// ImportRow is a denormalized record as found in an exported CSV.
type ImportRow struct {
	CreatedAt   time.Time
	ProductName string
	ProductCode string
	Quantity    float64
	UnitCost    float64
	TotalCost   float64
	UserName    string // optional
	Note        string
}

// ImportRecords stores rows in a single transaction, creating products and
// users on demand. Either every row is stored or none is.
func (s *SQLite) ImportRecords(ctx context.Context, rows []ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, row := range rows {
		productID, err := ensureProduct(ctx, tx, row.ProductName, row.ProductCode)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}

		var userID *int64
		if strings.TrimSpace(row.UserName) != "" {
			id, err := ensureUser(ctx, tx, row.UserName)
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", i+1, err)
			}
			userID = &id
		}

		if _, err := s.createRecord(ctx, tx, NewRecord{
			ProductID: productID,
			UserID:    userID,
			Quantity:  row.Quantity,
			UnitCost:  row.UnitCost,
			TotalCost: row.TotalCost,
			Note:      row.Note,
			CreatedAt: row.CreatedAt,
		}); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(rows), nil
}

// ListHistory returns one page of records matching params. One extra row
// is read to decide whether a next page exists.
func (s *SQLite) ListHistory(ctx context.Context, params supply.Params) (*supply.Page, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if params.StartDate != nil {
		start, _ := supply.ParseDate(*params.StartDate)
		where = append(where, "a.created_at >= ?")
		args = append(args, start.Format(timestampLayout))
	}
	if params.EndDate != nil {
		end, _ := supply.ParseDate(*params.EndDate)
		where = append(where, "a.created_at < ?")
		args = append(args, end.AddDate(0, 0, 1).Format(timestampLayout))
	}
	if params.ProductID != nil {
		where = append(where, "a.produto_id = ?")
		args = append(args, *params.ProductID)
	}
	if params.UserID != nil {
		where = append(where, "a.usuario_id = ?")
		args = append(args, *params.UserID)
	}

	order := "DESC"
	if params.Sort == supply.SortOldest {
		order = "ASC"
	}

	var b strings.Builder
	b.WriteString(`
		SELECT a.id, a.created_at, p.nome, p.codigo, a.quantidade, a.custo_unitario,
		       a.total_custo, COALESCE(u.nome, ''), a.observacao
		FROM abastecimentos a
		JOIN produtos p ON p.id = a.produto_id
		LEFT JOIN usuarios u ON u.id = a.usuario_id
	`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	fmt.Fprintf(&b, " ORDER BY a.created_at %s, a.id %s LIMIT ? OFFSET ?", order, order)
	args = append(args, params.PageSize+1, params.Offset())

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	page := &supply.Page{Items: []supply.Record{}}
	for rows.Next() {
		var (
			r         supply.Record
			id        int64
			createdAt string
		)
		if err := rows.Scan(
			&id,
			&createdAt,
			&r.ProductName,
			&r.ProductCode,
			&r.Quantity,
			&r.UnitCost,
			&r.TotalCost,
			&r.UserName,
			&r.Note,
		); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		r.ID = supply.ID(fmt.Sprint(id))
		r.CreatedAt, err = time.Parse(timestampLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		page.Items = append(page.Items, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	if len(page.Items) > params.PageSize {
		page.Items = page.Items[:params.PageSize]
		page.HasNext = true
	}
	return page, nil
}

// SearchProducts returns products whose name or code contains query,
// case-insensitively, ordered by name.
func (s *SQLite) SearchProducts(ctx context.Context, query string) ([]supply.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []supply.Product{}, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nome, codigo
		FROM produtos
		WHERE lower(nome) LIKE ? ESCAPE '\' OR lower(codigo) LIKE ? ESCAPE '\'
		ORDER BY nome, id
		LIMIT ?
	`, pattern, pattern, productSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := []supply.Product{}
	for rows.Next() {
		var (
			p  supply.Product
			id int64
		)
		if err := rows.Scan(&id, &p.Name, &p.Code); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.ID = supply.ID(fmt.Sprint(id))
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
