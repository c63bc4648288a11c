package catalog

import "context"

// Product is a single inventory record. Stock is conceptually non-negative;
// the data layer does not enforce that, the edit form does.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// Catalog is the read-only data access facade over the product collection.
// Implementations have no side effects and are idempotent.
type Catalog interface {
	// FetchAll returns the complete collection in its canonical order.
	FetchAll(ctx context.Context) ([]Product, error)
	// FetchByID returns the product with the given id, or found=false.
	FetchByID(ctx context.Context, id string) (Product, bool, error)

	Ping(ctx context.Context) error
}
