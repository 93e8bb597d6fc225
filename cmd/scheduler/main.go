package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"fotofeed/cmd/internal/logger"
	"fotofeed/cmd/scheduler/winner"
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

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Log.Errorf("failed to load timezone %s: %v", cfg.Scheduler.Timezone, err)
		os.Exit(1)
	}

	aggregator := winner.NewAggregator(
		repositories.NewPostRepository(db.Database()),
		repositories.NewDailyWinnerRepository(db.Database()),
		cfg.Scheduler.Window(),
	)

	if cfg.Scheduler.RunOnStart {
		aggregator.Run(ctx)
	}

	quartz := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)
	if _, err := quartz.AddFunc(cfg.Scheduler.Spec, func() { aggregator.Run(ctx) }); err != nil {
		logger.Log.Errorf("invalid scheduler spec %q: %v", cfg.Scheduler.Spec, err)
		os.Exit(1)
	}
	quartz.Start()

	logger.Log.Infof("scheduler started, daily winner at %q (%s)", cfg.Scheduler.Spec, loc)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down scheduler service...")

	cancel()
	<-quartz.Stop().Done()

	logger.Log.Info("scheduler service stopped")
}
