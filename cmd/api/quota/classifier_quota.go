package quota

import (
	"context"
	"sync"
	"time"

	"fotofeed/config"
)

// ClassifierQuotaLimiter enforces per-minute spacing and a daily cap on
// safety classifier calls. Counters are in memory and reset on restart.
type ClassifierQuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewClassifierQuotaLimiterFromConfig reads classifier_quota. Values <= 0 disable that limit.
func NewClassifierQuotaLimiterFromConfig(cfg config.AppConfig) *ClassifierQuotaLimiter {
	return NewClassifierQuotaLimiter(cfg.ClassifierQuota.RequestsPerMinute, cfg.ClassifierQuota.RequestsPerDay)
}

func NewClassifierQuotaLimiter(requestsPerMinute, requestsPerDay int) *ClassifierQuotaLimiter {
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &ClassifierQuotaLimiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
		now:        time.Now,
	}
}

// WaitAndReserve blocks until a call slot is free and reserves it.
// It returns (false, nil) once the daily cap is spent and (false, err) when ctx ends first.
func (l *ClassifierQuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := l.now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = l.lastCall.Add(l.interval).Sub(now)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		l.mu.Unlock()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
