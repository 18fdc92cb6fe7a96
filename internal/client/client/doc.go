// Package client talks to the feedback board API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     sign-in, boards and their members, categories, feedback, votes,
//     comments, replies and reactions.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient). Outbound
//     requests go through netx.Transport, which attaches the bearer token
//     supplied by a TokenSource, tags the request with an X-Request-ID and
//     optionally waits on a client-side rate limiter.
//
// # Error Handling
//
// A non-2xx response becomes an *APIError carrying the status code and the
// most specific message available: the server's JSON message, a line of its
// plain-text body, or a generic message for the operation. APIError unwraps
// to ErrUnauthorized, ErrForbidden or ErrNotFound where the status matches,
// so callers can use errors.Is. Network failures wrap ErrUnavailable. No
// request is retried.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every method takes a context and
// aborts the request when it is cancelled.
package client
