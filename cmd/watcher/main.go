package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fotofeed/cmd/internal/eventbus"
	"fotofeed/cmd/internal/logger"
	"fotofeed/cmd/watcher/event/dispatcher"
	"fotofeed/cmd/watcher/stream"
	"fotofeed/config"
	"fotofeed/db"
	"fotofeed/repositories"
)

func main() {
	cfg := config.GetConfig()
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer db.Disconnect(context.Background())

	brokers := eventbus.GetBrokers()
	if err := eventbus.EnsureTopics(brokers, eventbus.TopicDocumentEvents, 3); err != nil {
		logger.Log.Errorf("failed to ensure eventbus topics: %v", err)
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	likes := repositories.NewLikeRepository(db.Database())
	watcher := stream.NewLikeWatcher(likes.Collection(), dispatcher.NewEventDispatcher(bus))

	logger.Log.Info("starting watcher service...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Errorf("watcher stopped with error: %v", err)
		}
	}()

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down watcher service...")

	cancel()
	wg.Wait()

	logger.Log.Info("watcher service stopped")
}
