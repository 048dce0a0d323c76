package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/TristanRenard/anagochat/core"
)

// InMemoryIndex is a volatile core.CatalogIndex implementation storing product
// records in a process local map. It is safe for concurrent access. Lookups
// return copies so callers cannot mutate the canonical records.
type InMemoryIndex struct {
	mu       sync.RWMutex
	products map[string]core.CatalogProduct
}

// NewInMemoryIndex constructs an empty in-memory catalog index.
func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{products: make(map[string]core.CatalogProduct)}
}

// Lookup returns the product record for id and true, or a zero record and
// false when the id is unknown.
func (x *InMemoryIndex) Lookup(id string) (core.CatalogProduct, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	p, ok := x.products[id]
	return p, ok
}

// Len returns the number of indexed products.
func (x *InMemoryIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.products)
}

// Put inserts or replaces a single product record.
func (x *InMemoryIndex) Put(p core.CatalogProduct) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.products[p.ID] = p
}

// Refresh replaces the full snapshot with the records supplied by the lister.
// On lister failure the previous snapshot is kept untouched, so a transient
// listing error only means enrichment keeps working from stale data.
func (x *InMemoryIndex) Refresh(ctx context.Context, lister core.ProductLister) error {
	products, err := lister.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog index: %w", err)
	}
	snapshot := make(map[string]core.CatalogProduct, len(products))
	for _, p := range products {
		snapshot[p.ID] = p
	}
	x.mu.Lock()
	x.products = snapshot
	x.mu.Unlock()
	return nil
}
