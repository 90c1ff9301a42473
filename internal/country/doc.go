// Package country defines the catalog record and the pure views derived from
// the catalog: collated ordering by name and lookup by code.
//
// # Keys
//
// The three-letter code is the preferred identifier, but malformed records
// may lack one. Country.Key falls back to the common name, and every caller
// that needs a unique key (selection, list keys) uses Key.
//
// # Ordering
//
// SortedByName compares common names with golang.org/x/text/collate for the
// configured locale, so "Åland Islands" sorts with the A's rather than after
// "Zimbabwe". The sort is stable and never mutates its input.
//
// # Lookup
//
// FindByCode returns the first exact match; duplicate codes resolve to the
// earliest record. Resolve additionally distinguishes a catalog that has not
// finished loading from a code that does not exist.
package country
