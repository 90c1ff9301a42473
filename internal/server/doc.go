// Package server is a reference implementation of the profile service.
//
// It serves the five /api routes the atlas client speaks, on fiber, with gorm
// over a pure-Go sqlite file:
//
//   - saved_countries: one row per common name; saving twice is ignored
//   - country_counts: view counters, incremented with an upsert in a transaction
//   - users: submitted profiles; the newest user is the highest id
//
// Malformed bodies and blank names answer 400 with {"error": ...}. Request ids
// sent by the client in X-Request-ID are echoed and logged.
package server
