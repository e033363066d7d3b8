package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardzk/smmpanel/internal/config"
	"github.com/ardzk/smmpanel/internal/deps"
	"github.com/ardzk/smmpanel/internal/provider"
	"github.com/ardzk/smmpanel/internal/reconciler"
	"github.com/ardzk/smmpanel/internal/relay"
	"github.com/ardzk/smmpanel/internal/server"
	"github.com/ardzk/smmpanel/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	dependencies := deps.NewDependencies(cfg.SecretKey)
	logger := dependencies.Logger

	store, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURI)
	if err != nil {
		logger.Fatal(err)
	}

	providers := map[string]server.ProviderClient{}
	statusClients := map[string]reconciler.StatusClient{}
	for key, pc := range cfg.Providers {
		client := provider.NewClient(pc.BaseURL, pc.APIKey)
		providers[key] = client
		statusClients[key] = client
	}

	var notifier server.Notifier
	if cfg.TelegramToken != "" {
		tg, err := relay.New(cfg.TelegramToken, cfg.TelegramAdminChat, store, logger)
		if err != nil {
			logger.Errorf("telegram relay disabled: %v", err)
		} else {
			notifier = tg
			go tg.Run(ctx)
		}
	}

	stats := reconciler.NewStats(20)
	scheduler := reconciler.NewScheduler(store, statusClients, stats, logger)
	go scheduler.Run(ctx)

	srv := server.NewServer(store, providers, notifier, cfg, dependencies)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
