// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"
	"time"

	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modellink"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

// LinkStorage defines a set of methods for types implementing LinkStorage.
type LinkStorage interface {
	// CreateUnique persists a new link and fails with AlreadyExistsError when shortID is taken.
	CreateUnique(ctx context.Context, shortID string, URL string, ownerID string) (modellink.Link, error)
	// Retrieve returns the link stored under shortID.
	Retrieve(ctx context.Context, shortID string) (modellink.Link, error)
	// RetrieveByOwnerID returns all links owned by one particular user ID.
	RetrieveByOwnerID(ctx context.Context, ownerID string) ([]modellink.Link, error)
	// IncrementClicks atomically bumps the click counter and returns the resulting count.
	IncrementClicks(ctx context.Context, shortID string) (int64, error)
	// Rename moves a link to a new shortID, failing with AlreadyExistsError when newID is taken.
	Rename(ctx context.Context, oldID string, newID string) error
	PingDB() error
	CloseDB() error
}

// UserStorage defines a set of methods for types implementing UserStorage.
type UserStorage interface {
	// UpsertByExternalID creates or refreshes an identity and returns the local user ID.
	UpsertByExternalID(ctx context.Context, externalID string, username string, avatarURL string) (string, error)
}

// WebhookStorage defines a set of methods for types implementing WebhookStorage.
type WebhookStorage interface {
	List(ctx context.Context) ([]modelstorage.WebhookSubscription, error)
	Get(ctx context.Context, id string) (modelstorage.WebhookSubscription, error)
	Upsert(ctx context.Context, sub modelstorage.WebhookSubscription) error
	Delete(ctx context.Context, id string) error
	// RecordDelivery books an attempted delivery; totalCalls grows only on success.
	RecordDelivery(ctx context.Context, id string, success bool, at time.Time) error
}

// Storage defines a set of embedded interfaces for types implementing Storage.
type Storage interface {
	LinkStorage
	UserStorage
	WebhookStorage
}
