package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, DefaultSchedulerSpec, c.Scheduler.Spec)
	assert.Equal(t, DefaultSchedulerTimezone, c.Scheduler.Timezone)
	assert.Equal(t, 24*time.Hour, c.Scheduler.Window())
	assert.Equal(t, DefaultMaxCommentLength, c.Moderation.MaxCommentLength)
	assert.Equal(t, DefaultClassifierTimeout, c.Moderation.Timeout())
	assert.Equal(t, DefaultWinnerCacheTTL, c.API.WinnerCacheTTL())
	assert.Equal(t, DefaultAPIAddr, c.API.Addr)
}

func TestParseKeepsExplicitValues(t *testing.T) {
	raw := `
scheduler:
  spec: "30 6 * * *"
  timezone: UTC
  window_hours: 12
moderation:
  model_name: gemini-test
  timeout_seconds: 3
api:
  addr: ":9090"
  winner_cache_ttl_seconds: 5
`
	c, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "30 6 * * *", c.Scheduler.Spec)
	assert.Equal(t, "UTC", c.Scheduler.Timezone)
	assert.Equal(t, 12*time.Hour, c.Scheduler.Window())
	assert.Equal(t, "gemini-test", c.Moderation.ModelName)
	assert.Equal(t, 3*time.Second, c.Moderation.Timeout())
	assert.Equal(t, ":9090", c.API.Addr)
	assert.Equal(t, 5*time.Second, c.API.WinnerCacheTTL())
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("scheduler: [unterminated"))
	assert.Error(t, err)
}
