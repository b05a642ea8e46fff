// Package modelstorage provides locally used types and their structure for storage operations.
package modelstorage

import "time"

// LinkPostgresEntry defines the row structure of the links relation.
type LinkPostgresEntry struct {
	ID          int64  `db:"id"`
	ShortID     string `db:"short_id"`
	URL         string `db:"url"`
	OwnerID     string `db:"owner_id"`
	Clicks      int64  `db:"clicks"`
}

// UserPostgresEntry defines the row structure of the users relation.
type UserPostgresEntry struct {
	ID         string `db:"id"`
	ExternalID string `db:"external_id"`
	Username   string `db:"username"`
	AvatarURL  string `db:"avatar_url"`
}

// WebhookFormat selects the wire shape a subscription expects.
type WebhookFormat string

const (
	FormatDiscord WebhookFormat = "discord"
	FormatSlack   WebhookFormat = "slack"
	FormatCustom  WebhookFormat = "custom"
)

// WebhookSubscription describes one externally registered delivery endpoint.
type WebhookSubscription struct {
	ID              string        `db:"id" json:"id"`
	URL             string        `db:"url" json:"url"`
	Events          []string      `db:"-" json:"events"`
	Format          WebhookFormat `db:"format" json:"format"`
	Active          bool          `db:"active" json:"active"`
	TotalCalls      int64         `db:"total_calls" json:"total_calls"`
	LastTriggeredAt *time.Time    `db:"last_triggered_at" json:"last_triggered_at,omitempty"`
}

// Subscribed reports whether the subscription wants the given event id.
// An empty filter means the subscription receives every event.
func (s *WebhookSubscription) Subscribed(eventID string) bool {
	if len(s.Events) == 0 {
		return true
	}
	for _, e := range s.Events {
		if e == eventID {
			return true
		}
	}
	return false
}
