// Package dispatcher provides interfaces for types to be in compliance with.
package dispatcher

import (
	"context"

	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
)

// Emitter defines a set of methods for types implementing Emitter.
type Emitter interface {
	// Emit fans the event out to all matching active subscriptions without
	// blocking the caller on any delivery.
	Emit(eventType modelevent.Type, payload modelevent.Payload)
	// Test synchronously delivers a synthetic payload to one subscription and
	// returns the observed HTTP status.
	Test(ctx context.Context, subscriptionID string) (int, error)
}
