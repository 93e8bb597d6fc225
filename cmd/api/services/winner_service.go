package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"

	"fotofeed/cmd/internal/logger"
	"fotofeed/models"
	"fotofeed/repositories"
)

const winnerCacheKey = "daily-winner"

type WinnerReader interface {
	Get(ctx context.Context) (*models.DailyWinner, error)
}

type winnerCache interface {
	Get(ctx context.Context, key any, returnObj any) (any, error)
	Set(ctx context.Context, key, object any, options ...store.Option) error
}

// WinnerService serves the current daily winner through a short-lived local cache.
type WinnerService struct {
	reader WinnerReader
	cache  winnerCache
	ttl    time.Duration
}

func NewWinnerService(reader WinnerReader, ttl time.Duration) (*WinnerService, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create winner cache: %w", err)
	}
	cacheManager := cache.New[any](ristrettostore.NewRistretto(client))
	return &WinnerService{
		reader: reader,
		cache:  marshaler.New(cacheManager),
		ttl:    ttl,
	}, nil
}

// Current returns the stored daily winner. A missing record is NotFound.
func (s *WinnerService) Current(ctx context.Context) (*models.DailyWinner, error) {
	if cached, err := s.cache.Get(ctx, winnerCacheKey, new(models.DailyWinner)); err == nil {
		if w, ok := cached.(*models.DailyWinner); ok {
			return w, nil
		}
	}

	w, err := s.reader.Get(ctx)
	if errors.Is(err, repositories.ErrDailyWinnerNotFound) {
		return nil, newError(KindNotFound, "The daily winner has not been calculated yet.")
	}
	if err != nil {
		logger.ErrorWithFields("failed to load daily winner", logger.Fields{"error": err.Error()})
		return nil, newError(KindInternal, internalRetryMessage)
	}

	if err := s.cache.Set(ctx, winnerCacheKey, w, store.WithExpiration(s.ttl), store.WithCost(1)); err != nil {
		logger.Log.Warnf("failed to cache daily winner: %v", err)
	}
	return w, nil
}
