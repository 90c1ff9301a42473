// Package state provides thread-safe state management for the catalog session.
//
// # Overview
//
// The catalog is loaded once per session in the background while the UI is
// already drawing. Store is the coordination point between the two: the
// loader writes a single Update, the UI reads Snapshots on every render.
//
// # Architecture
//
//	Producer (loader):             Consumer (UI):
//	┌─────────────────┐            ┌──────────────────┐
//	│ source.Load()   │            │                  │
//	│      ↓          │            │                  │
//	│ store.Update()  │───────────→│ store.Snapshot() │
//	│   (once)        │  (mutex)   │      ↓           │
//	│                 │            │  render UI       │
//	└─────────────────┘            └──────────────────┘
//
// # Lookup State
//
// Snapshot.Loaded is false until Update runs. Detail lookups use
// Snapshot.Resolve, which reports LookupLoading before the first load and
// LookupNotFound afterwards, so an invalid code never shows a permanent
// loading message.
//
// # Ordering
//
// Update sorts the catalog with the collation of the locale it is given, and
// snapshots always hold the sorted view.
//
// # Copy Semantics
//
// Snapshot clones the country slice and the error value, so the UI may keep
// or mutate what it receives without affecting the store.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // Ready to use immediately
package state
