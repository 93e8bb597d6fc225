package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"fotofeed/cmd/api/auth"
	"fotofeed/cmd/api/moderation"
	"fotofeed/cmd/api/quota"
	"fotofeed/cmd/api/router"
	"fotofeed/cmd/api/services"
	"fotofeed/cmd/internal/logger"
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

	tokens, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		logger.Log.Errorf("failed to configure token verification: %v", err)
		os.Exit(1)
	}

	classifier, err := moderation.NewGeminiClassifier(ctx, os.Getenv("GEMINI_API_KEY"), cfg.Moderation.ModelName, cfg.Moderation.Timeout())
	if err != nil {
		logger.Log.Errorf("failed to create safety classifier: %v", err)
		os.Exit(1)
	}

	commentSvc := services.NewCommentService(
		classifier,
		repositories.NewCommentRepository(db.Database()),
		quota.NewClassifierQuotaLimiterFromConfig(cfg),
		cfg.Moderation.MaxCommentLength,
	)
	winnerSvc, err := services.NewWinnerService(repositories.NewDailyWinnerRepository(db.Database()), cfg.API.WinnerCacheTTL())
	if err != nil {
		logger.Log.Errorf("failed to create winner service: %v", err)
		os.Exit(1)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.New(router.Deps{
		Tokens:   tokens,
		Comments: commentSvc,
		Winner:   winnerSvc,
		Ping:     db.Ping,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
	})

	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		logger.Log.Infof("api listening on %s", cfg.API.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("api server error: %v", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down api service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("api shutdown error: %v", err)
	}
	cancel()

	logger.Log.Info("api service stopped")
}
