// Package common holds constants shared by the client's transport and the
// layers above it.
package common

const (
	// AuthorizationHeaderName carries the bearer token on API requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName tags each outbound request so failures can be
	// matched with server logs.
	RequestIDHeaderName = "X-Request-ID"
	// ContentTypeJSON is sent with every request body.
	ContentTypeJSON = "application/json"
)
