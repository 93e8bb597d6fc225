package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofeed/config"
)

func TestUnlimitedQuotaNeverBlocks(t *testing.T) {
	l := NewClassifierQuotaLimiterFromConfig(config.AppConfig{})

	for i := 0; i < 100; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestDailyLimitIsEnforcedAndResets(t *testing.T) {
	day := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	l := NewClassifierQuotaLimiter(0, 2)
	l.now = func() time.Time { return day }

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	day = day.Add(24 * time.Hour)
	ok, err = l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSpacingHonoursContextCancellation(t *testing.T) {
	l := NewClassifierQuotaLimiter(1, 0)

	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ok, err = l.WaitAndReserve(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
