// Package inmemory provides data types and methods for in-memory storage operations.
package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modellink"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
	storageErrors "github.com/dcslol/dcs_go_invite_shortener/internal/storage/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.Storage = (*Storage)(nil)
)

type userEntry struct {
	localID   string
	username  string
	avatarURL string
}

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu       sync.Mutex
	links    map[string]*modellink.Link
	users    map[string]userEntry
	webhooks map[string]modelstorage.WebhookSubscription
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage() *Storage {
	return &Storage{
		links:    make(map[string]*modellink.Link),
		users:    make(map[string]userEntry),
		webhooks: make(map[string]modelstorage.WebhookSubscription),
	}
}

// CreateUnique persists a new link unless its shortID is already taken.
func (s *Storage) CreateUnique(ctx context.Context, shortID string, URL string, ownerID string) (modellink.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[shortID]; ok {
		return modellink.Link{}, &storageErrors.AlreadyExistsError{ID: shortID}
	}
	link := modellink.Link{ShortID: shortID, OriginalURL: URL, OwnerID: ownerID}
	s.links[shortID] = &link
	return link, nil
}

// Retrieve returns the link stored under shortID.
func (s *Storage) Retrieve(ctx context.Context, shortID string) (modellink.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[shortID]
	if !ok {
		return modellink.Link{}, &storageErrors.NotFoundError{ID: shortID}
	}
	return *link, nil
}

// RetrieveByOwnerID returns all links owned by one particular user ID.
func (s *Storage) RetrieveByOwnerID(ctx context.Context, ownerID string) ([]modellink.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var links []modellink.Link
	for _, link := range s.links {
		if link.OwnerID == ownerID {
			links = append(links, *link)
		}
	}
	return links, nil
}

// IncrementClicks bumps the click counter under the storage lock so that no
// concurrent increment is ever lost.
func (s *Storage) IncrementClicks(ctx context.Context, shortID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[shortID]
	if !ok {
		return 0, &storageErrors.NotFoundError{ID: shortID}
	}
	link.Clicks++
	return link.Clicks, nil
}

// Rename moves a link to a new shortID.
func (s *Storage) Rename(ctx context.Context, oldID string, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[oldID]
	if !ok {
		return &storageErrors.NotFoundError{ID: oldID}
	}
	if _, ok := s.links[newID]; ok {
		return &storageErrors.AlreadyExistsError{ID: newID}
	}
	delete(s.links, oldID)
	link.ShortID = newID
	s.links[newID] = link
	return nil
}

// UpsertByExternalID creates or refreshes an identity and returns the local user ID.
func (s *Storage) UpsertByExternalID(ctx context.Context, externalID string, username string, avatarURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.users[externalID]
	if !ok {
		entry = userEntry{localID: uuid.New().String()}
	}
	entry.username = username
	entry.avatarURL = avatarURL
	s.users[externalID] = entry
	return entry.localID, nil
}

// List returns all webhook subscriptions.
func (s *Storage) List(ctx context.Context) ([]modelstorage.WebhookSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := make([]modelstorage.WebhookSubscription, 0, len(s.webhooks))
	for _, sub := range s.webhooks {
		subs = append(subs, sub)
	}
	return subs, nil
}

// Get returns one webhook subscription by its ID.
func (s *Storage) Get(ctx context.Context, id string) (modelstorage.WebhookSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.webhooks[id]
	if !ok {
		return modelstorage.WebhookSubscription{}, &storageErrors.NotFoundError{ID: id}
	}
	return sub, nil
}

// Upsert stores a webhook subscription, assigning an ID when absent.
func (s *Storage) Upsert(ctx context.Context, sub modelstorage.WebhookSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if existing, ok := s.webhooks[sub.ID]; ok {
		sub.TotalCalls = existing.TotalCalls
		sub.LastTriggeredAt = existing.LastTriggeredAt
	}
	s.webhooks[sub.ID] = sub
	return nil
}

// Delete removes a webhook subscription.
func (s *Storage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.webhooks[id]; !ok {
		return &storageErrors.NotFoundError{ID: id}
	}
	delete(s.webhooks, id)
	return nil
}

// RecordDelivery books an attempted delivery against a subscription.
func (s *Storage) RecordDelivery(ctx context.Context, id string, success bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.webhooks[id]
	if !ok {
		return &storageErrors.NotFoundError{ID: id}
	}
	if success {
		sub.TotalCalls++
	}
	sub.LastTriggeredAt = &at
	s.webhooks[id] = sub
	return nil
}

// PingDB satisfies the storage interface for in-memory handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB satisfies the storage interface for in-memory handling.
func (s *Storage) CloseDB() error {
	return nil
}
