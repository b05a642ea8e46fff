// Package rest provides functionality for initializing a server for the invite shortening service.
package rest

import (
	"context"
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/dcslol/dcs_go_invite_shortener/internal/api/rest/handlers"
	"github.com/dcslol/dcs_go_invite_shortener/internal/api/rest/middleware"
	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/metrics"
	clicksService "github.com/dcslol/dcs_go_invite_shortener/internal/service/clicks/v1"
	dispatcherService "github.com/dcslol/dcs_go_invite_shortener/internal/service/dispatcher/v1"
	oauthService "github.com/dcslol/dcs_go_invite_shortener/internal/service/oauth/v1"
	registryService "github.com/dcslol/dcs_go_invite_shortener/internal/service/registry/v1"
	sessionService "github.com/dcslol/dcs_go_invite_shortener/internal/service/session/v1"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
)

var (
	serverStart = time.Now()
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, st storage.Storage) (server *http.Server, err error) {
	sessionCodec, err := sessionService.NewSessionCodec(cfg.SecretConfig)
	if err != nil {
		return nil, err
	}
	dispatcher, err := dispatcherService.InitDispatcher(ctx, wg, cfg.WebhookConfig, st)
	if err != nil {
		return nil, err
	}
	registrar, err := registryService.InitRegistry(cfg.ServerConfig, st, dispatcher)
	if err != nil {
		return nil, err
	}
	tracker, err := clicksService.InitTracker(cfg.WebhookConfig, st, dispatcher)
	if err != nil {
		return nil, err
	}
	flow, err := oauthService.InitFlow(cfg.OAuthConfig, sessionCodec, st)
	if err != nil {
		return nil, err
	}
	handler, err := handlers.InitHandler(registrar, tracker, flow, dispatcher, st, cfg.ServerConfig, cfg.SecretConfig)
	if err != nil {
		return nil, err
	}
	sessionHandler, err := middleware.NewSessionHandler(sessionCodec, cfg.SecretConfig)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(sessionHandler.SessionHandle)
	r.Post("/api/links", handler.HandleCreateLink())
	r.Put("/api/links/{linkID}", handler.HandleRenameLink())
	r.Get("/api/user/links", handler.HandleGetUserLinks())
	r.Get("/api/user", handler.HandleWhoAmI())
	r.Get("/api/webhooks", handler.HandleListWebhooks())
	r.Post("/api/webhooks", handler.HandleUpsertWebhook())
	r.Delete("/api/webhooks/{webhookID}", handler.HandleDeleteWebhook())
	r.Post("/api/webhooks/{webhookID}/test", handler.HandleTestWebhook())
	r.Get("/auth/login", handler.HandleLogin())
	r.Get("/auth/callback", handler.HandleCallback())
	r.Get("/auth/logout", handler.HandleLogout())
	r.Get("/ping", handler.HandlePingDB())
	r.Get("/metrics", metrics.Handler)
	r.Get("/{linkID}", handler.HandleRedirect())
	r.Mount("/debug", chiMiddleware.Profiler())
	expvar.Publish("system.uptime", expvar.Func(uptime))

	srv := &http.Server{
		Addr:         cfg.ServerConfig.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv, nil
}
