package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dcslol/dcs_go_invite_shortener/internal/api/rest"
	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/inmemory"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/inpsql"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// add a waiting group
	wg := &sync.WaitGroup{}
	// get configuration
	cfg, err := config.NewDefaultConfiguration()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}
	cfg.ParseFlags()
	// initialize storage, switch between "inmemory" and "inpsql" modules
	var storageInit storage.Storage
	switch cfg.StorageConfig.DatabaseDSN {
	case "":
		storageInit = inmemory.InitStorage()
	default:
		// one wg member for the DB closure goroutine
		wg.Add(1)
		storageInit, err = inpsql.InitStorage(ctx, wg, cfg.StorageConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("storage initialization failed")
		}
	}
	// one wg member for the webhook dispatcher drain goroutine
	wg.Add(1)
	server, err := rest.InitServer(ctx, wg, cfg, storageInit)
	if err != nil {
		log.Fatal().Err(err).Msg("server initialization failed")
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		log.Info().Msg("server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			log.Fatal().Err(err).Msg("server shutdown failed")
		}
		cancel()
	}()
	// start up the server
	log.Info().Str("address", cfg.ServerConfig.ServerAddress).Msg("server start attempted")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
	// wait for the dispatcher and storage goroutines to finish before exiting
	wg.Wait()
	log.Info().Msg("server shutdown succeeded")
}
