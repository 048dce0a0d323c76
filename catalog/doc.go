// Package catalog provides the read-only product lookup used to enrich
// partial product references from assistant events, plus a volatile in-memory
// index implementation fed by the external product-listing collaborator.
// Enrichment is best-effort: an empty or stale index never blocks or fails a
// dispatch, it only leaves titles unfilled.
package catalog
