package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RetryDelays holds the fixed delay for each retry attempt (1-based).
var RetryDelays = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	1 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Topic names a base topic along with its retry and DLQ topics.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ returns e.g. my_topic.dlq.
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// GetRetryTopics returns every retry topic, base.retry.1 .. base.retry.N.
func (t Topic) GetRetryTopics() []string {
	topics := make([]string, len(RetryDelays))
	for i := range RetryDelays {
		topics[i] = fmt.Sprintf("%s.retry.%d", t.base, i+1)
	}
	return topics
}

// GetRetryTopic returns the retry topic for the given attempt (1-based).
func (t Topic) GetRetryTopic(retryCount int) (string, error) {
	if retryCount <= 0 || retryCount > len(RetryDelays) {
		return "", ErrMaxRetryExceeded
	}
	return fmt.Sprintf("%s.retry.%d", t.base, retryCount), nil
}

// Event is the envelope written to Kafka.
type Event struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	LastError string          `json:"last_error,omitempty"`
}

type EventHandler func(ctx context.Context, event Event) error

// EventBus abstracts publishing and consuming events.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	// Subscribe consumes the base topic. A handler error schedules a retry,
	// or a DLQ publish once MaxRetry is exhausted.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
	// StartRetryReinjector moves due events from the retry topics back to the base topic.
	StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error
	Close()
}

var ErrMaxRetryExceeded = errors.New("max retry exceeded")

var ErrRetryScheduleFailed = errors.New("failed to publish retry or dlq event")
