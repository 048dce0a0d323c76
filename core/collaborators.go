package core

import "context"

// CartOp selects the direction of a cart mutation.
type CartOp string

const (
	// CartAdd adds a line item to the cart.
	CartAdd CartOp = "add"
	// CartRemove removes a line item from the cart.
	CartRemove CartOp = "remove"
)

// CartService issues one remote cart mutation per line item. Implementations
// own transport concerns (timeouts, retries); this core treats a returned
// error as an opaque per-item failure.
type CartService interface {
	MutateCart(ctx context.Context, ref ProductRef, op CartOp) error
}

// Navigator hands a navigation instruction off to the surrounding
// application. Fire and forget from this core's perspective.
type Navigator interface {
	Navigate(targetPage string)
}

// CatalogIndex is a synchronous read-only lookup of known product records,
// used for best-effort enrichment of partial product references.
type CatalogIndex interface {
	Lookup(id string) (CatalogProduct, bool)
}

// ProductLister supplies the canonical product records that back a
// CatalogIndex. Implemented by the external product-listing collaborator.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]CatalogProduct, error)
}
