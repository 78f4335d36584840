package supply

import "context"

// SuggestionLimit caps the number of product suggestions shown.
const SuggestionLimit = 10

// Source provides history pages and product lookups. It is implemented by
// the remote API client and by the local SQLite store.
type Source interface {
	// ListHistory returns one page of supply records matching params.
	ListHistory(ctx context.Context, params Params) (*Page, error)

	// SearchProducts returns products whose name or code matches query.
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}

// TruncateProducts keeps at most SuggestionLimit products.
func TruncateProducts(products []Product) []Product {
	if len(products) > SuggestionLimit {
		return products[:SuggestionLimit]
	}
	return products
}
