// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog/log"

	"github.com/dcslol/dcs_go_invite_shortener/internal/api/rest/middleware"
	"github.com/dcslol/dcs_go_invite_shortener/internal/api/rest/modeldto"
	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/clicks"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/dispatcher"
	serviceErrors "github.com/dcslol/dcs_go_invite_shortener/internal/service/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/oauth"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/registry"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
	storageErrors "github.com/dcslol/dcs_go_invite_shortener/internal/storage/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

const (
	stateCookieName  = "dcs_oauth_state"
	stateCookieAge   = 600
	sessionCookieAge = 2592000

	dbTimeout = 500 * time.Millisecond
)

// Handler defines data structure handling and provides support for adding new implementations.
type Handler struct {
	registrar      registry.Registrar
	tracker        clicks.Tracker
	flow           oauth.Flow
	emitter        dispatcher.Emitter
	webhookStorage storage.WebhookStorage
	serverCfg      *config.ServerConfig
	secretCfg      *config.SecretConfig
}

// InitHandler initializes a Handler object and sets its attributes.
func InitHandler(registrar registry.Registrar, tracker clicks.Tracker, flow oauth.Flow, emitter dispatcher.Emitter,
	webhookStorage storage.WebhookStorage, serverCfg *config.ServerConfig, secretCfg *config.SecretConfig) (*Handler, error) {
	if registrar == nil || tracker == nil || flow == nil || emitter == nil || webhookStorage == nil {
		return nil, errors.New("nil service was passed to handler initializer")
	}
	return &Handler{
		registrar:      registrar,
		tracker:        tracker,
		flow:           flow,
		emitter:        emitter,
		webhookStorage: webhookStorage,
		serverCfg:      serverCfg,
		secretCfg:      secretCfg,
	}, nil
}

// HandleCreateLink stores a validated invite target under a short ID.
func (h *Handler) HandleCreateLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		var post modeldto.RequestLink
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		ownerID := ""
		if payload := middleware.SessionFromContext(r.Context()); payload != nil {
			ownerID = payload.UserID
		}
		link, err := h.registrar.CreateShortLink(ctx, post.ID, post.URL, ownerID)
		if err != nil {
			h.writeLinkError(w, err)
			return
		}
		log.Info().Str("short_id", link.ShortID).Str("owner", ownerID).Msg("link created")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(modeldto.ResponseLink{
			ID:          link.ShortID,
			ShortURL:    h.shortURL(link.ShortID),
			OriginalURL: link.OriginalURL,
			Clicks:      link.Clicks,
		})
	}
}

// HandleRedirect resolves a short ID, records the click and redirects the
// client to the original invite URL.
func (h *Handler) HandleRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		shortID := chi.URLParam(r, "linkID")
		link, err := h.registrar.Resolve(ctx, shortID)
		if err != nil {
			h.writeLinkError(w, err)
			return
		}
		if _, err := h.tracker.RecordClick(ctx, shortID); err != nil {
			h.writeLinkError(w, err)
			return
		}
		w.Header().Set("Location", link.OriginalURL)
		w.WriteHeader(http.StatusTemporaryRedirect)
	}
}

// HandleRenameLink moves an owned link to a new short ID.
func (h *Handler) HandleRenameLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		payload := middleware.SessionFromContext(r.Context())
		if payload == nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		shortID := chi.URLParam(r, "linkID")
		var post modeldto.RequestRename
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		link, err := h.registrar.Resolve(ctx, shortID)
		if err != nil {
			h.writeLinkError(w, err)
			return
		}
		if link.OwnerID != payload.UserID {
			http.Error(w, "not link owner", http.StatusForbidden)
			return
		}
		if err := h.registrar.Rename(ctx, shortID, post.NewID); err != nil {
			h.writeLinkError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(modeldto.ResponseLink{
			ID:          post.NewID,
			ShortURL:    h.shortURL(post.NewID),
			OriginalURL: link.OriginalURL,
			Clicks:      link.Clicks,
		})
	}
}

// HandleGetUserLinks returns all links owned by the authenticated user.
func (h *Handler) HandleGetUserLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		payload := middleware.SessionFromContext(r.Context())
		if payload == nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		links, err := h.registrar.ResolveByOwnerID(ctx, payload.UserID)
		if err != nil {
			h.writeLinkError(w, err)
			return
		}
		if len(links) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		response := make([]modeldto.ResponseLink, 0, len(links))
		for _, link := range links {
			response = append(response, modeldto.ResponseLink{
				ID:          link.ShortID,
				ShortURL:    h.shortURL(link.ShortID),
				OriginalURL: link.OriginalURL,
				Clicks:      link.Clicks,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// HandleLogin redirects the client into the provider authorization flow.
func (h *Handler) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectURL, state, err := h.flow.BeginLogin()
		if err != nil {
			log.Error().Err(err).Msg("begin login failed")
			http.Error(w, "login unavailable", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			MaxAge:   stateCookieAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   h.serverCfg.SecureCookies,
		})
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// HandleCallback completes the authorization-code exchange. The state cookie
// is cleared on every exit path.
func (h *Handler) HandleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookieState := ""
		if cookie, err := r.Cookie(stateCookieName); err == nil {
			cookieState = cookie.Value
		}
		h.clearCookie(w, stateCookieName)

		token, err := h.flow.HandleCallback(r.Context(), r.URL.Query(), cookieState)
		if err != nil {
			reason := "auth_failed"
			var oauthErr *serviceErrors.OAuthFlowError
			if errors.As(err, &oauthErr) {
				reason = oauthErr.Reason
			}
			log.Warn().Str("reason", reason).Msg("OAuth callback failed")
			http.Redirect(w, r, "/login?error="+reason, http.StatusFound)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     h.secretCfg.AuthCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   sessionCookieAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   h.serverCfg.SecureCookies,
		})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

// HandleLogout clears the session cookie.
func (h *Handler) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.clearCookie(w, h.secretCfg.AuthCookie)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// HandleWhoAmI echoes the verified session identity.
func (h *Handler) HandleWhoAmI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := middleware.SessionFromContext(r.Context())
		if payload == nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(modeldto.ResponseUser{
			UserID:    payload.UserID,
			Username:  payload.Username,
			AvatarURL: payload.AvatarURL,
		})
	}
}

// HandleListWebhooks returns all registered webhook subscriptions.
func (h *Handler) HandleListWebhooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		subs, err := h.webhookStorage.List(ctx)
		if err != nil {
			h.writeLinkError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(subs)
	}
}

// HandleUpsertWebhook registers or updates a webhook subscription.
func (h *Handler) HandleUpsertWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		var post modeldto.RequestWebhook
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if post.URL == "" {
			http.Error(w, "missing webhook url", http.StatusBadRequest)
			return
		}
		format := modelstorage.WebhookFormat(post.Format)
		switch format {
		case modelstorage.FormatDiscord, modelstorage.FormatSlack, modelstorage.FormatCustom:
		case "":
			format = modelstorage.FormatCustom
		default:
			http.Error(w, "unknown webhook format", http.StatusBadRequest)
			return
		}
		active := true
		if post.Active != nil {
			active = *post.Active
		}
		sub := modelstorage.WebhookSubscription{
			ID:     post.ID,
			URL:    post.URL,
			Events: post.Events,
			Format: format,
			Active: active,
		}
		if err := h.webhookStorage.Upsert(ctx, sub); err != nil {
			h.writeLinkError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// HandleDeleteWebhook removes a webhook subscription.
func (h *Handler) HandleDeleteWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
		defer cancel()
		if err := h.webhookStorage.Delete(ctx, chi.URLParam(r, "webhookID")); err != nil {
			h.writeLinkError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleTestWebhook synchronously delivers a synthetic payload and reports the
// observed status.
func (h *Handler) HandleTestWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.emitter.Test(r.Context(), chi.URLParam(r, "webhookID"))
		if err != nil {
			var notFound *storageErrors.NotFoundError
			if errors.As(err, &notFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "webhook delivery failed", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(modeldto.ResponseWebhookTest{Status: status})
	}
}

// HandlePingDB reports storage liveness.
func (h *Handler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.registrar.PingDB(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (h *Handler) shortURL(shortID string) string {
	base := h.serverCfg.BaseURL
	if base != "" && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + shortID
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.serverCfg.SecureCookies,
	})
}

// writeLinkError maps the error taxonomy onto HTTP statuses.
func (h *Handler) writeLinkError(w http.ResponseWriter, err error) {
	var (
		incorrectURL    *serviceErrors.ServiceIncorrectInputURL
		incorrectID     *serviceErrors.ServiceIncorrectShortID
		reservedID      *serviceErrors.ServiceReservedShortID
		alreadyExists   *storageErrors.AlreadyExistsError
		notFound        *storageErrors.NotFoundError
		timeoutExceeded *storageErrors.ContextTimeoutExceededError
	)
	switch {
	case errors.As(err, &incorrectURL), errors.As(err, &incorrectID), errors.As(err, &reservedID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &alreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &timeoutExceeded):
		w.WriteHeader(http.StatusGatewayTimeout)
	default:
		log.Error().Err(err).Msg("unhandled service error")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
