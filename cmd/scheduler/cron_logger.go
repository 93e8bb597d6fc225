package main

import (
	"fmt"
	"strings"

	"fotofeed/cmd/internal/logger"
)

// cronLogger routes robfig/cron diagnostics to the service logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Debugf("cron: %s%s", msg, formatKeysAndValues(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Errorf("cron: %s: %v%s", msg, err, formatKeysAndValues(keysAndValues))
}

func formatKeysAndValues(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
