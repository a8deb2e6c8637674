package main

import (
	"bufio"
	"context"
	"errors"
	stdlog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"feedsync/internal/cache"
	"feedsync/internal/config"
	"feedsync/internal/core/domain"
	"feedsync/internal/feed"
	"feedsync/internal/identity"
	"feedsync/internal/logging"
	"feedsync/internal/source"
	"feedsync/internal/store"
)

func main() {
	godotenv.Load()
	cfg := config.FromEnv()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger init: %v", err)
	}
	defer log.Sync()

	c, err := cache.New(cfg.CachePath(), cfg.CacheTTL, nil)
	if err != nil {
		log.Fatal("cache init failed", zap.Error(err))
	}
	ident := identity.New(cfg.IdentityPath())
	device, err := ident.ID()
	if err != nil {
		log.Fatal("device identity init failed", zap.Error(err))
	}

	st := store.New(cfg.StoreURL, cfg.StoreKey, cfg.StoreTimeout, log)
	src := source.New(cfg.SourceURL, cfg.SourceKey, cfg.SourceTimeout, nil)
	dedup := feed.NewDeduper(st, log)
	persister := feed.NewStorePersister(st, dedup, log)
	ingestor := feed.NewIngestor(src, c, persister, log)

	log.Info("feedsync started", zap.String("device", device))

	// Manual refresh on stdin, same as waiting out the interval.
	trigger := make(chan struct{}, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				return
			}
			select {
			case trigger <- struct{}{}:
			default:
			}
		}
	}()

	for {
		refreshAll(ingestor, log)
		select {
		case <-time.After(cfg.RefreshInterval):
		case <-trigger:
			log.Info("manual refresh triggered")
		}
	}
}

func refreshAll(ingestor *feed.Ingestor, log *zap.Logger) {
	for _, cat := range domain.DefaultCategories {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		items, err := ingestor.Refresh(ctx, cat)
		cancel()

		switch {
		case errors.Is(err, feed.ErrNoRelevantContent):
			log.Info("no relevant content", zap.String("category", cat.Slug))
		case err != nil:
			log.Warn("refresh failed", zap.String("category", cat.Slug), zap.Error(err))
		default:
			log.Info("category refreshed", zap.String("category", cat.Slug), zap.Int("items", len(items)))
		}
	}
}
