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
	"fotofeed/cmd/processor/event/handler"
	"fotofeed/cmd/processor/event/trigger"
	"fotofeed/config"
	"fotofeed/db"
	"fotofeed/events"
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

	registry := trigger.NewRegistry()
	likeSync := handler.NewLikeCountSynchronizer(
		repositories.NewLikeRepository(db.Database()),
		repositories.NewPostRepository(db.Database()),
	)
	if err := likeSync.Register(registry); err != nil {
		logger.Log.Errorf("failed to register like trigger: %v", err)
		os.Exit(1)
	}

	groupID := eventbus.GetGroupID()

	subscribeRunner := func() error {
		return eventbus.SubscribeJSON(ctx, bus, groupID, eventbus.TopicDocumentEvents,
			func(ctx context.Context, evt events.DocumentChangedEvent, meta eventbus.Event) error {
				if evt.Type != events.DocumentChanged {
					// other event types share the topic; commit and move on
					return nil
				}
				n, err := registry.Dispatch(ctx, evt)
				if n == 0 {
					logger.Log.Debugf("no trigger for %s (%s)", evt.Path, evt.Kind)
				}
				return err
			})
	}

	logger.Log.Info("starting processor service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := subscribeRunner(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Errorf("eventbus subscribe error: %v", err)
		}
	}()

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down processor service...")

	cancel()
	wg.Wait()

	logger.Log.Info("processor service stopped")
}
