package eventbus

import (
	"os"
	"strconv"
	"strings"

	"fotofeed/cmd/internal/logger"
)

// GetBrokers returns Kafka bootstrap servers from env KAFKA_BOOTSTRAP_SERVERS
func GetBrokers() string {
	v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if v == "" {
		panic("KAFKA_BOOTSTRAP_SERVERS environment variable is required")
	}
	return v
}

// GetGroupID returns consumer group id from env KAFKA_GROUP_ID
func GetGroupID() string {
	v := os.Getenv("KAFKA_GROUP_ID")
	if v == "" {
		panic("KAFKA_GROUP_ID environment variable is required")
	}
	return v
}

// positiveIntFromEnv returns 0 when key is unset or invalid so librdkafka keeps its default.
func positiveIntFromEnv(key string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		logger.Log.Warnf("failed to parse %s: %v, using default", key, err)
		return 0
	}
	if value <= 0 {
		logger.Log.Warnf("%s must be positive, using default", key)
		return 0
	}
	return value
}
