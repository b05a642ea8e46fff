// Package modelevent provides locally used types and their structure for event handling between modules.
package modelevent

import "time"

// Type enumerates link lifecycle events emitted towards webhook subscribers.
type Type string

const (
	LinkCreated   Type = "link.created"
	LinkClicked   Type = "link.clicked"
	LinkMilestone Type = "link.milestone"
	WebhookTest   Type = "webhook.test"
)

// WireID returns the underscore form used in subscription event filters.
func (t Type) WireID() string {
	b := []byte(t)
	for i := range b {
		if b[i] == '.' {
			b[i] = '_'
		}
	}
	return string(b)
}

// Payload carries event attributes keyed by their wire names.
type Payload map[string]interface{}

// Event is a transient record produced by a triggering component and consumed by the dispatcher.
type Event struct {
	Type      Type
	Payload   Payload
	Timestamp time.Time
}
