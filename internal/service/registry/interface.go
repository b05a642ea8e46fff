// Package registry provides interfaces for types to be in compliance with.
package registry

import (
	"context"

	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modellink"
)

// Registrar defines a set of methods for types implementing Registrar.
type Registrar interface {
	CreateShortLink(ctx context.Context, candidateID string, targetURL string, ownerID string) (modellink.Link, error)
	Resolve(ctx context.Context, shortID string) (modellink.Link, error)
	ResolveByOwnerID(ctx context.Context, ownerID string) ([]modellink.Link, error)
	Rename(ctx context.Context, oldID string, newID string) error
	PingDB() error
}
