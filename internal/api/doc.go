// Package api provides an HTTP client for the atlas profile service.
//
// # Overview
//
// The profile service stores saved countries, per-country view counters and
// user profiles. Its storage and rules are owned by the service; this package
// only speaks the observed contract:
//
//	POST /api/save-one-country           {country_name}           -> text
//	POST /api/update-one-country-count   {country_name}           -> {count}
//	GET  /api/get-all-saved-countries                             -> [{country_name}]
//	GET  /api/get-newest-user                                     -> [user]
//	POST /api/add-one-user               {name, country_name, email, bio} -> text
//
// Countries are identified by their common name, not their code. Callers
// reconcile names against the catalog themselves (see package saved).
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept and User-Agent: atlas/0.1 headers
//   - Carry a fresh X-Request-ID, also attached to the debug log lines
//   - Are unbounded unless Options.Timeout is set
//
// # Error Handling
//
// Transport failures are wrapped as "execute request: ...". Statuses of 400
// and above become *StatusError naming the path. Malformed JSON bodies are
// wrapped as "decode response: ...". The client never retries.
//
// # Testing
//
// Backend is implemented by *Client; packages that consume the service accept
// the narrow interface they need so tests can substitute stubs, and the
// client itself is exercised against httptest servers.
package api
