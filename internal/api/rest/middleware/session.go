// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"net/http"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelsession"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/session"
)

type contextKey int

const sessionContextKey contextKey = 0

// SessionHandler sets object structure.
type SessionHandler struct {
	codec session.Codec
	cfg   *config.SecretConfig
}

// NewSessionHandler initializes a new session middleware handler.
func NewSessionHandler(codec session.Codec, cfg *config.SecretConfig) (*SessionHandler, error) {
	return &SessionHandler{
		codec: codec,
		cfg:   cfg,
	}, nil
}

// SessionHandle attaches the verified session payload to the request context.
// A missing or unverifiable cookie means anonymous, never an error.
func (h *SessionHandler) SessionHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cfg.AuthCookie)
		if err == nil {
			if payload := h.codec.Verify(cookie.Value); payload != nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, payload))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the verified session payload, or nil for
// anonymous requests.
func SessionFromContext(ctx context.Context) *modelsession.Payload {
	payload, _ := ctx.Value(sessionContextKey).(*modelsession.Payload)
	return payload
}
