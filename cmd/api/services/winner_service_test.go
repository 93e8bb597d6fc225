package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofeed/models"
	"fotofeed/repositories"
)

type fakeWinnerReader struct {
	winner *models.DailyWinner
	err    error
	calls  int
}

func (f *fakeWinnerReader) Get(context.Context) (*models.DailyWinner, error) {
	f.calls++
	return f.winner, f.err
}

// mapCache is a synchronous stand-in for the marshaler cache.
type mapCache struct {
	values map[any]any
}

func (m *mapCache) Get(_ context.Context, key any, _ any) (any, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *mapCache) Set(_ context.Context, key, object any, _ ...store.Option) error {
	m.values[key] = object
	return nil
}

func TestWinnerServiceCachesRecord(t *testing.T) {
	snapshot := models.WinnerSnapshot{PostID: "p1", Likes: 3}
	reader := &fakeWinnerReader{winner: &models.DailyWinner{HasWinner: true, Winner: &snapshot}}
	s := &WinnerService{reader: reader, cache: &mapCache{values: map[any]any{}}, ttl: time.Minute}

	for i := 0; i < 3; i++ {
		w, err := s.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "p1", w.Winner.PostID)
	}
	assert.Equal(t, 1, reader.calls)
}

func TestWinnerServiceNotFound(t *testing.T) {
	reader := &fakeWinnerReader{err: repositories.ErrDailyWinnerNotFound}
	s := &WinnerService{reader: reader, cache: &mapCache{values: map[any]any{}}, ttl: time.Minute}

	_, err := s.Current(context.Background())
	assertKind(t, err, KindNotFound)
}

func TestWinnerServiceStoreFailureIsInternal(t *testing.T) {
	reader := &fakeWinnerReader{err: errors.New("server selection timeout")}
	s := &WinnerService{reader: reader, cache: &mapCache{values: map[any]any{}}, ttl: time.Minute}

	_, err := s.Current(context.Background())
	assertKind(t, err, KindInternal)
}

func TestNewWinnerServiceUsesRistretto(t *testing.T) {
	reader := &fakeWinnerReader{winner: &models.DailyWinner{HasWinner: false, Message: "none"}}
	s, err := NewWinnerService(reader, time.Minute)
	require.NoError(t, err)

	w, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, w.HasWinner)
	assert.Equal(t, "none", w.Message)
}
