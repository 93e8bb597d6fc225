package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofeed/cmd/internal/eventbus"
	"fotofeed/events"
)

type recordingBus struct {
	topic     string
	published []eventbus.Event
	err       error
}

func (b *recordingBus) Publish(_ context.Context, topic string, event eventbus.Event) error {
	if b.err != nil {
		return b.err
	}
	b.topic = topic
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(context.Context, string, eventbus.Topic, eventbus.EventHandler) error {
	return nil
}

func (b *recordingBus) StartRetryReinjector(context.Context, string, eventbus.Topic) error {
	return nil
}

func (b *recordingBus) Close() {}

func TestPublishDocumentChanged(t *testing.T) {
	bus := &recordingBus{}
	d := NewEventDispatcher(bus)
	fixed := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	require.NoError(t, d.PublishDocumentChanged(context.Background(), "pubblicazioni/p1/likes/u1", events.ChangeDeleted))

	assert.Equal(t, eventbus.TopicDocumentEvents.Base(), bus.topic)
	require.Len(t, bus.published, 1)

	got, err := eventbus.DecodeJSON[events.DocumentChangedEvent](bus.published[0])
	require.NoError(t, err)
	assert.Equal(t, events.DocumentChanged, got.Type)
	assert.Equal(t, "watcher", got.Source)
	assert.Equal(t, "pubblicazioni/p1/likes/u1", got.Path)
	assert.Equal(t, events.ChangeDeleted, got.Kind)
	assert.True(t, fixed.Equal(got.Timestamp))
	assert.Equal(t, got.ID, bus.published[0].ID)
}

func TestPublishDocumentChangedPropagatesBusError(t *testing.T) {
	boom := errors.New("broker down")
	d := NewEventDispatcher(&recordingBus{err: boom})

	err := d.PublishDocumentChanged(context.Background(), "pubblicazioni/p1/likes/u1", events.ChangeCreated)
	assert.ErrorIs(t, err, boom)
}
