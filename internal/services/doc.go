// package services defines the remote expansion boundary: resolving a
// playlist identifier into its ordered member video identifiers via the
// YouTube Data API v3.
//
// The client is deliberately thin. It owns pagination, rate limiting, and
// the HTTP error taxonomy; it does not know about courses or the store, and
// it never retries beyond its own pagination loop. All of its errors are
// recoverable from the caller's point of view: the expected fallback is
// manual URL entry.
package services
