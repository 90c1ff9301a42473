// Package saved implements the saved-countries side of the profile service.
//
// Action posts a single save and reports its Outcome. Store caches the two
// server reads backing the saved page (the saved-name list and the newest
// user) and only reads the server when Refresh is called; Invalidate marks the
// cache stale after a write so the interface can offer a refresh.
//
// The service keys saved countries by common name. Reconcile maps those names
// back onto catalog records: unmatched names are dropped and logged, and
// names that match several records are flagged rather than guessed.
package saved
