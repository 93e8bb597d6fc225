package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"fotofeed/cmd/internal/logger"
)

// KafkaEventBus implements EventBus on confluent-kafka-go.
type KafkaEventBus struct {
	Producer *kafka.Producer
	Brokers  string
}

func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	producerCfg := &kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	}
	if maxBytes := positiveIntFromEnv("KAFKA_MESSAGE_MAX_BYTES"); maxBytes > 0 {
		(*producerCfg)["message.max.bytes"] = maxBytes
	}

	p, err := kafka.NewProducer(producerCfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	// delivery reports and client errors
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("message delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaEventBus{
		Producer: p,
		Brokers:  brokers,
	}, nil
}

func (k *KafkaEventBus) Close() {
	if k.Producer != nil {
		if remaining := k.Producer.Flush(5000); remaining > 0 {
			logger.Log.Warnf("%d messages still queued after flush", remaining)
		}
		k.Producer.Close()
		logger.Log.Info("kafka producer closed")
	}
}

func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)

	err = k.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %T", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver message: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (k *KafkaEventBus) newConsumer(groupID string) (*kafka.Consumer, error) {
	consumerCfg := &kafka.ConfigMap{
		"bootstrap.servers":             k.Brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            false, // commits follow handler outcome
		"partition.assignment.strategy": "range",
	}
	if maxPoll := positiveIntFromEnv("KAFKA_MAX_POLL_INTERVAL_MS"); maxPoll > 0 {
		(*consumerCfg)["max.poll.interval.ms"] = maxPoll
	}
	return kafka.NewConsumer(consumerCfg)
}

func (k *KafkaEventBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("create kafka consumer: %w", err)
	}
	defer c.Close()

	topicsToSubscribe := []string{topic.Base()}
	if err := c.SubscribeTopics(topicsToSubscribe, nil); err != nil {
		return fmt.Errorf("subscribe topics %v: %w", topicsToSubscribe, err)
	}

	logger.Log.Infof("consumer %s started, topics: %s", groupID, strings.Join(topicsToSubscribe, ", "))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("consumer stopping")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.IsFatal() {
				return fmt.Errorf("consumer fatal error: %w", err)
			}
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Log.Errorf("invalid event envelope on %s: %v, committing and skipping", *msg.TopicPartition.Topic, err)
			c.CommitMessage(msg)
			continue
		}

		if evt.MaxRetry <= 0 || evt.MaxRetry > len(RetryDelays) {
			evt.MaxRetry = len(RetryDelays)
		}

		if evt.Retry > 0 {
			logger.Log.Infof("handling event %s (retry %d/%d) from %s", evt.ID, evt.Retry, evt.MaxRetry, *msg.TopicPartition.Topic)
		} else {
			logger.Log.Debugf("handling event %s from %s", evt.ID, *msg.TopicPartition.Topic)
		}

		if err := handler(ctx, evt); err != nil {
			if scheduleErr := k.scheduleRetry(ctx, topic, evt, err); scheduleErr != nil {
				logger.Log.Errorf("%v, offset not committed", scheduleErr)
				continue
			}
		}

		if _, err := c.CommitMessage(msg); err != nil {
			logger.Log.Errorf("commit offset: %v", err)
		}
	}
}

// scheduleRetry publishes a failed event to the next retry topic, or to the DLQ once attempts are exhausted.
func (k *KafkaEventBus) scheduleRetry(ctx context.Context, topic Topic, evt Event, cause error) error {
	evt.LastError = cause.Error()
	nextRetry := evt.Retry + 1

	if nextRetry > evt.MaxRetry {
		logger.Log.Errorf("event %s exhausted retries, sending to %s: %v", evt.ID, topic.DLQ(), cause)
		if err := k.Publish(ctx, topic.DLQ(), evt); err != nil {
			return fmt.Errorf("%w: dlq %s: %v", ErrRetryScheduleFailed, topic.DLQ(), err)
		}
		return nil
	}

	retryTopic, err := topic.GetRetryTopic(nextRetry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRetryScheduleFailed, err)
	}
	evt.Retry = nextRetry
	logger.Log.Warnf("event %s failed, scheduling retry %d/%d on %s", evt.ID, evt.Retry, evt.MaxRetry, retryTopic)
	if err := k.Publish(ctx, retryTopic, evt); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRetryScheduleFailed, retryTopic, err)
	}
	return nil
}

func (k *KafkaEventBus) StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("create retry reinjector: %w", err)
	}
	defer c.Close()

	retryTopics := topic.GetRetryTopics()
	if err := c.SubscribeTopics(retryTopics, nil); err != nil {
		return fmt.Errorf("subscribe retry topics %v: %w", retryTopics, err)
	}

	logger.Log.Infof("retry reinjector %s started, topics: %s", groupID, strings.Join(retryTopics, ", "))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("retry reinjector stopping")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) {
				if kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				if kerr.IsFatal() {
					return fmt.Errorf("retry reinjector fatal error: %w", err)
				}
			}
			logger.Log.Errorf("retry reinjector read: %v", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		topicName := *msg.TopicPartition.Topic
		delay, ok := ParseRetryDelayFromTopicName(topicName)
		if !ok {
			logger.Log.Errorf("cannot parse retry topic %s, committing and skipping", topicName)
			c.CommitMessage(msg)
			continue
		}

		readyAt := msg.Timestamp.Add(delay)
		if now := time.Now(); now.Before(readyAt) {
			// short sleeps keep the consumer responsive; the message is re-read
			// from the uncommitted offset after a seek
			sleepDur := readyAt.Sub(now)
			if sleepDur > 500*time.Millisecond {
				sleepDur = 500 * time.Millisecond
			}
			time.Sleep(sleepDur)
			if err := c.Seek(msg.TopicPartition, 0); err != nil {
				logger.Log.Errorf("seek %s: %v", topicName, err)
			}
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Log.Errorf("invalid event envelope on %s: %v, committing and skipping", topicName, err)
			c.CommitMessage(msg)
			continue
		}

		logger.Log.Infof("reinjecting event %s from %s to %s (retry %d)", evt.ID, topicName, topic.Base(), evt.Retry)
		if err := k.Publish(ctx, topic.Base(), evt); err != nil {
			logger.Log.Errorf("reinject event %s: %v, offset not committed", evt.ID, err)
			continue
		}

		if _, err := c.CommitMessage(msg); err != nil {
			logger.Log.Errorf("commit after reinject: %v", err)
		}
	}
}
