// Package modeldto provides locally used types and their structure for data interchange.
package modeldto

// RequestLink models the link creation request body.
type RequestLink struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

// ResponseLink models the link representation returned to clients.
type ResponseLink struct {
	ID          string `json:"id"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
	Clicks      int64  `json:"clicks"`
}

// RequestRename models the rename request body.
type RequestRename struct {
	NewID string `json:"new_id"`
}

// RequestWebhook models the webhook subscription upsert body.
type RequestWebhook struct {
	ID     string   `json:"id,omitempty"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
	Format string   `json:"format"`
	Active *bool    `json:"active,omitempty"`
}

// ResponseWebhookTest reports the status observed by a diagnostic delivery.
type ResponseWebhookTest struct {
	Status int `json:"status"`
}

// ResponseUser echoes the verified session identity.
type ResponseUser struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}
