// Package registry provides functionality for validating and allocating short
// invite-link identifiers.
package registry

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/speps/go-hashids/v2"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/metrics"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/dispatcher"
	serviceErrors "github.com/dcslol/dcs_go_invite_shortener/internal/service/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelevent"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modellink"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/registry"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
	storageErrors "github.com/dcslol/dcs_go_invite_shortener/internal/storage/errors"
)

const SaltKey = "dcs.lol invite salt"
const MinLength = 5
const generateRetries = 3

var shortIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// reservedIDs are path segments claimed by the application itself, matched
// case-insensitively.
var reservedIDs = map[string]struct{}{
	"admin":     {},
	"api":       {},
	"auth":      {},
	"callback":  {},
	"dashboard": {},
	"debug":     {},
	"login":     {},
	"logout":    {},
	"metrics":   {},
	"ping":      {},
	"showcase":  {},
	"static":    {},
	"webhooks":  {},
	"www":       {},
}

// inviteHosts are the canonical hosts an invite target may resolve to, mapped
// to whether the first path segment must be "invite".
var inviteHosts = map[string]bool{
	"discord.gg":     false,
	"discord.com":    true,
	"discordapp.com": true,
}

// Check interface implementation explicitly
var (
	_ registry.Registrar = (*Registry)(nil)
)

// Registry struct defines data structure handling and provides support for adding new implementations.
type Registry struct {
	cfg         *config.ServerConfig
	hashID      *hashids.HashID
	linkStorage storage.LinkStorage
	emitter     dispatcher.Emitter
}

// InitRegistry initializes a Registry object and sets its attributes.
func InitRegistry(cfg *config.ServerConfig, s storage.LinkStorage, e dispatcher.Emitter) (*Registry, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if e == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil dispatcher was passed to service initializer"}
	}
	hd := hashids.NewData()
	hd.Salt = SaltKey
	hd.MinLength = MinLength
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, &serviceErrors.ServiceInitHashError{Msg: err.Error()}
	}
	return &Registry{
		cfg:         cfg,
		hashID:      hashID,
		linkStorage: s,
		emitter:     e,
	}, nil
}

// CreateShortLink validates the target URL and candidate ID, persists the link
// and emits link.created. Validation is ordered so that clearly invalid input
// never reaches the storage round-trip.
func (r *Registry) CreateShortLink(ctx context.Context, candidateID string, targetURL string, ownerID string) (modellink.Link, error) {
	normalized, err := normalizeInviteURL(targetURL)
	if err != nil {
		return modellink.Link{}, err
	}
	if candidateID != "" {
		if err := validateShortID(candidateID); err != nil {
			return modellink.Link{}, err
		}
		link, err := r.linkStorage.CreateUnique(ctx, candidateID, normalized, ownerID)
		if err != nil {
			return modellink.Link{}, err
		}
		r.afterCreate(link)
		return link, nil
	}
	// no candidate given: allocate a generated slug, stepping over collisions
	for attempt := 0; attempt < generateRetries; attempt++ {
		slug, err := r.generateSlug()
		if err != nil {
			return modellink.Link{}, &serviceErrors.ServiceEncodingHashError{Msg: err.Error()}
		}
		link, err := r.linkStorage.CreateUnique(ctx, slug, normalized, ownerID)
		if err != nil {
			var alreadyExists *storageErrors.AlreadyExistsError
			if errors.As(err, &alreadyExists) {
				continue
			}
			return modellink.Link{}, err
		}
		r.afterCreate(link)
		return link, nil
	}
	return modellink.Link{}, &serviceErrors.ServiceEncodingHashError{Msg: "could not allocate a unique slug"}
}

// Resolve returns the link stored under shortID.
func (r *Registry) Resolve(ctx context.Context, shortID string) (modellink.Link, error) {
	return r.linkStorage.Retrieve(ctx, shortID)
}

// ResolveByOwnerID returns all links owned by one particular user ID.
func (r *Registry) ResolveByOwnerID(ctx context.Context, ownerID string) ([]modellink.Link, error) {
	return r.linkStorage.RetrieveByOwnerID(ctx, ownerID)
}

// Rename moves a link to a new shortID after re-running ID validation and
// re-checking uniqueness at the store.
func (r *Registry) Rename(ctx context.Context, oldID string, newID string) error {
	if err := validateShortID(newID); err != nil {
		return err
	}
	return r.linkStorage.Rename(ctx, oldID, newID)
}

// PingDB reports storage liveness.
func (r *Registry) PingDB() error {
	return r.linkStorage.PingDB()
}

// ShortURL composes the absolute short URL for an ID.
func (r *Registry) ShortURL(shortID string) string {
	return strings.TrimSuffix(r.cfg.BaseURL, "/") + "/" + shortID
}

func (r *Registry) afterCreate(link modellink.Link) {
	metrics.LinksCreated.Inc()
	r.emitter.Emit(modelevent.LinkCreated, modelevent.Payload{
		"id":          link.ShortID,
		"shortUrl":    r.ShortURL(link.ShortID),
		"originalUrl": link.OriginalURL,
	})
}

// generateSlug generates a short unique identifier from the current timestamp.
func (r *Registry) generateSlug() (string, error) {
	now := time.Now().UnixNano()
	return r.hashID.Encode([]int{int(now)})
}

func validateShortID(candidateID string) error {
	if !shortIDPattern.MatchString(candidateID) {
		return &serviceErrors.ServiceIncorrectShortID{Msg: candidateID + ": short ID must be 3-32 characters of A-Za-z0-9_-"}
	}
	if _, ok := reservedIDs[strings.ToLower(candidateID)]; ok {
		return &serviceErrors.ServiceReservedShortID{ID: candidateID}
	}
	return nil
}

// normalizeInviteURL upgrades the scheme, canonicalizes the host and verifies
// the target matches the accepted invite-link shape.
func normalizeInviteURL(targetURL string) (string, error) {
	raw := strings.TrimSpace(targetURL)
	if raw == "" {
		return "", &serviceErrors.ServiceIncorrectInputURL{Msg: "empty target URL"}
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &serviceErrors.ServiceIncorrectInputURL{Msg: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &serviceErrors.ServiceIncorrectInputURL{Msg: parsed.Scheme + ": unsupported scheme"}
	}
	parsed.Scheme = "https"
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	parsed.Host = host

	needsInvitePrefix, ok := inviteHosts[host]
	if !ok {
		return "", &serviceErrors.ServiceIncorrectInputURL{Msg: host + ": not an invite host"}
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if needsInvitePrefix {
		if len(segments) != 2 || segments[0] != "invite" || segments[1] == "" {
			return "", &serviceErrors.ServiceIncorrectInputURL{Msg: targetURL + ": not an invite link"}
		}
	} else {
		if len(segments) != 1 || segments[0] == "" {
			return "", &serviceErrors.ServiceIncorrectInputURL{Msg: targetURL + ": not an invite link"}
		}
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}
