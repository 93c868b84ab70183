// Package acl provides Anti-Corruption Layer adapters for external services.
//
// An ACL adapter keeps an external API's shapes out of the domain:
//
//   - External DTOs stay unexported in the adapter file
//   - External error bodies and status codes map to domain errors
//   - External rows are validated before domain values are built
//
// # Components
//
//   - [BaseAdapter]: Embeddable struct wrapping a [clients.Client]
//   - [MapHTTPError]: HTTP status and client error to domain error mapping
//   - [DecodeResponse]: Generic JSON response decoder
//   - [TranslateSlice]: Batch translation helper
//   - [HorizonsProvider]: ports.EphemerisProvider backed by JPL Horizons
//
// # Error Handling Strategy
//
//   - 404 Not Found → [domain.ErrNotFound]
//   - 400/422 → [domain.ErrValidation]
//   - 401/403/429/5xx/Network → [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded],
// [clients.ErrRateLimited]) are also translated to [domain.ErrUnavailable].
package acl
