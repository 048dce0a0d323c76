package catalog

import "github.com/TristanRenard/anagochat/core"

// Enrich merges partial product references with the catalog index. The result
// has the same length and order as refs: any entry whose id is known to the
// index gets its Title filled from the canonical record, entries with no match
// pass through unchanged. A nil index is treated as empty. Enrichment never
// drops an entry and never fails.
func Enrich(refs []core.ProductRef, index core.CatalogIndex) []core.ProductRef {
	if len(refs) == 0 {
		return refs
	}
	out := make([]core.ProductRef, len(refs))
	copy(out, refs)
	if index == nil {
		return out
	}
	for i, ref := range out {
		if p, ok := index.Lookup(ref.ID); ok {
			out[i].Title = p.Title
		}
	}
	return out
}
