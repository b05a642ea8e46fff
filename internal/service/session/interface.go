// Package session provides interfaces for types to be in compliance with.
package session

import "github.com/dcslol/dcs_go_invite_shortener/internal/service/modelsession"

// Codec defines a set of methods for types implementing Codec.
type Codec interface {
	Sign(payload modelsession.Payload) (string, error)
	// Verify returns the embedded payload, or nil for any malformed, tampered
	// or otherwise unverifiable token. Callers treat nil as unauthenticated.
	Verify(token string) *modelsession.Payload
}
