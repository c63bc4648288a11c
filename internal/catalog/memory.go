package catalog

import (
	"context"
	"slices"
	"sync"
)

// MemCatalog serves a fixed product collection from memory. It hands out
// copies, so callers own what they receive and cannot reach the canonical
// collection through it.
type MemCatalog struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemCatalog(products []Product) *MemCatalog {
	return &MemCatalog{products: slices.Clone(products)}
}

func (c *MemCatalog) Ping(ctx context.Context) error { return nil }

func (c *MemCatalog) FetchAll(ctx context.Context) ([]Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.products), nil
}

func (c *MemCatalog) FetchByID(ctx context.Context, id string) (Product, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}
