// Package modelsession provides locally used types and their structure for session handling between modules.
package modelsession

// Payload holds the identity encoded inside a signed session token.
type Payload struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}
