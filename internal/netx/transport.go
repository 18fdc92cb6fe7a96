// Package netx provides the outbound HTTP plumbing used by the API client.
package netx

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/feedbackboard/internal/common"
)

// TokenSource yields the bearer token for the next request. An empty token
// means the request is sent without credentials.
type TokenSource interface {
	Token() string
}

// Transport decorates another RoundTripper. Each request waits on Limiter
// when one is set, gets an X-Request-ID unless the caller supplied one, and
// carries the current bearer token from Tokens.
type Transport struct {
	Base    http.RoundTripper
	Tokens  TokenSource
	Limiter *rate.Limiter
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	if t.Tokens != nil {
		if tok := strings.TrimSpace(t.Tokens.Token()); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// NewLimiter returns a limiter allowing rps requests per second, or nil when
// rps is not positive.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
