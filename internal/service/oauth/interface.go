// Package oauth provides interfaces for types to be in compliance with.
package oauth

import (
	"context"
	"net/url"
)

// Flow orchestrates the third-party authorization-code exchange.
type Flow interface {
	// BeginLogin returns the provider authorize URL and the state cookie value
	// bound to it.
	BeginLogin() (redirectURL string, state string, err error)
	// HandleCallback runs the callback checks in order and returns a signed
	// session token. Failures carry an opaque reason code, never provider text.
	HandleCallback(ctx context.Context, query url.Values, cookieState string) (string, error)
}
