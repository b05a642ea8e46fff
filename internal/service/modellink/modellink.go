// Package modellink provides locally used types and their structure for link handling between modules.
package modellink

// Link describes a shortened invite link as seen by services.
type Link struct {
	ShortID     string
	OriginalURL string
	Clicks      int64
	OwnerID     string
}

// FullLink pairs a link with its absolute short URL for presentation.
type FullLink struct {
	Link
	ShortURL string
}
