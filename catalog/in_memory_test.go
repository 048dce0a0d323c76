package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/TristanRenard/anagochat/core"
)

// Interface compliance (compile-time assertions)
var (
	_ core.CatalogIndex  = (*InMemoryIndex)(nil)
	_ core.ProductLister = (listerFunc)(nil)
)

type listerFunc func(ctx context.Context) ([]core.CatalogProduct, error)

func (f listerFunc) ListProducts(ctx context.Context) ([]core.CatalogProduct, error) { return f(ctx) }

func TestInMemoryIndex_PutAndLookup(t *testing.T) {
	idx := NewInMemoryIndex()
	if _, ok := idx.Lookup("missing"); ok {
		t.Fatal("expected miss on empty index")
	}

	idx.Put(core.CatalogProduct{ID: "7", Title: "Firewall Pro", Price: 249.9})
	p, ok := idx.Lookup("7")
	if !ok || p.Title != "Firewall Pro" {
		t.Fatalf("unexpected lookup result: %+v (ok=%v)", p, ok)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", idx.Len())
	}
}

func TestInMemoryIndex_RefreshReplacesSnapshot(t *testing.T) {
	idx := NewInMemoryIndex()
	idx.Put(core.CatalogProduct{ID: "old", Title: "Old"})

	lister := listerFunc(func(context.Context) ([]core.CatalogProduct, error) {
		return []core.CatalogProduct{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, nil
	})
	if err := idx.Refresh(context.Background(), lister); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected snapshot of 2, got %d", idx.Len())
	}
	if _, ok := idx.Lookup("old"); ok {
		t.Fatal("refresh must replace, not merge")
	}
}

func TestInMemoryIndex_RefreshFailureKeepsSnapshot(t *testing.T) {
	idx := NewInMemoryIndex()
	idx.Put(core.CatalogProduct{ID: "keep", Title: "Keep"})

	boom := errors.New("listing down")
	lister := listerFunc(func(context.Context) ([]core.CatalogProduct, error) { return nil, boom })

	err := idx.Refresh(context.Background(), lister)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped lister error, got %v", err)
	}
	if _, ok := idx.Lookup("keep"); !ok {
		t.Fatal("failed refresh must keep previous snapshot")
	}
}
