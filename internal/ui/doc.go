// Package ui provides the terminal interface for browsing the country catalog.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all view state; collaborators
// that outlive a single Update (the view counter, the save action, the saved
// store and the profile form) are pointers so value copies of Model share them.
// Network work runs inside tea.Cmd functions and reports back as messages.
//
// # Package Structure
//
//   - app.go: Model, Update loop, view switching and the Run function
//   - commands.go: message types and the tea.Cmd constructors
//   - catalog.go: sorted country list
//   - detail.go: single-country record, view count and save action
//   - saved_page.go: newest-user greeting, saved cards and profile form
//   - logs.go: tail of the structured log file
//   - header.go, help.go, keys.go: chrome and key bindings
//   - theme.go, style_helpers.go: palettes and lipgloss helpers
//
// # Views
//
//   - Countries: every record in collated name order
//   - Detail: one record resolved by code; Loading until the catalog lands,
//     then Not found or the record
//   - Saved: server-side saved list reconciled against the catalog by name
//   - Logs: the last entries of the log file, colored by level
//
// # Event Flow
//
//  1. Run builds the Model and starts the program
//  2. tickMsg polls state.Store until the catalog is loaded
//  3. Opening a detail record starts a view-count visit; replies carry a
//     ticket and are dropped if the user has since left or moved on
//  4. Saves and profile submissions mark the saved cache stale; the
//     saved page re-reads the server on mount or when r is pressed
//
// # Key Bindings
//
//   - c / m / l: Countries, Saved, Logs
//   - enter: open the selected country
//   - s: save the open country
//   - r: refresh the saved page
//   - p or tab: edit the profile form
//   - esc or b: back to Countries
//   - T: cycle theme
//   - h or ?: help
//   - q or Ctrl+C: quit
package ui
