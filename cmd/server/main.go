package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"

	"github.com/fenggwsx/GeoChat/internal/auth"
	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/currencies"
	"github.com/fenggwsx/GeoChat/internal/geo"
	"github.com/fenggwsx/GeoChat/internal/moderation"
	"github.com/fenggwsx/GeoChat/internal/rates"
	"github.com/fenggwsx/GeoChat/internal/server"
	"github.com/fenggwsx/GeoChat/internal/storage/sqlite"
)

const dispatcherQueue = 1024

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)
	if cfg.JWT.UsesDefaultSecret() {
		log.Warn("JWT secret is the built-in placeholder, set GEOCHAT_JWT_SECRET before exposing the server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.NewStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		log.Info("Closing database")
		_ = store.Close()
	}()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	currencyService := currencies.NewService(store, log)
	if cfg.CurrencySeedFile != "" {
		if _, err := currencyService.Seed(ctx, cfg.CurrencySeedFile); err != nil {
			return fmt.Errorf("seed currencies: %w", err)
		}
	}

	words := moderation.DefaultWords
	if cfg.Chat.BannedWordsFile != "" {
		if words, err = moderation.LoadWords(cfg.Chat.BannedWordsFile); err != nil {
			return err
		}
	}
	filter, err := moderation.NewModerator(words, cfg.Chat.Sentinels, log)
	if err != nil {
		return fmt.Errorf("build content filter: %w", err)
	}

	hub := server.NewSessionHub(log)
	controller := chat.NewController(
		chat.NewRegistry(),
		geo.NewGate(cfg.Chat.AdmissionRegion()),
		filter,
		hub,
		log,
		chat.WithInformationalRegion(cfg.Chat.InformationalRegion()),
	)
	dispatcher := chat.NewDispatcher(controller, dispatcherQueue, log)

	app := server.NewApp(cfg, server.Deps{
		Dispatcher: dispatcher,
		Hub:        hub,
		Auth:       auth.NewService(store, cfg.JWT, log),
		Currencies: currencyService,
		Importer:   rates.NewImporter(store, store, rates.NewFetcher(cfg.Rates), log),
	}, log)

	log.Info("Starting GeoChat",
		"addr", cfg.ListenAddr,
		"admission_region", cfg.Chat.AdmissionRegion().String(),
		"db", cfg.Database.Path,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return app.Run(gctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Server stopped")
	return nil
}
