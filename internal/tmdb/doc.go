// Package tmdb provides the external film lookup client.
//
// The client wraps TMDB's search and movie detail endpoints with retrying
// transport behaviour: transient HTTP statuses and network timeouts are
// retried with exponential backoff, Retry-After headers are honored, and
// permanent client errors fail immediately. Exhausted retries surface as
// transient failures so callers can report an indeterminate verdict instead
// of caching a wrong one.
package tmdb
