// Package app provides the orchestration layer for atlas.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the
// catalog source, the profile service client and the UI. It is the
// composition root for both the TUI and the non-interactive subcommands.
//
// # Startup
//
//  1. Load ~/.config/atlas/config.toml (defaults when missing)
//  2. Load ~/.config/atlas/prefs.toml (theme, collation locale)
//  3. Build the zap logger writing to the configured log file
//  4. Build the api client and the catalog source
//  5. Start the one-shot catalog loader in the background
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Components
//
//   - app.go: Open, Session and Run
//   - loader.go: StartLoader, the single background catalog load
//   - commands.go: List, Show and Serve used by the CLI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├──→ StartLoader() ──→ source.Load() ──→ store.Update()  (once)
//	       │
//	       └──→ ui.Run() ──→ store.Snapshot() on every render
//
// The catalog is never reloaded during a session. Remote failures fall back to
// the bundled snapshot inside the catalog package, so the loader itself
// cannot fail.
package app
