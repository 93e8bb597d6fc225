package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fotofeed/cmd/internal/eventbus"
	"fotofeed/events"
)

// EventDispatcher publishes watcher events.
type EventDispatcher struct {
	bus eventbus.EventBus
	now func() time.Time
}

func NewEventDispatcher(bus eventbus.EventBus) *EventDispatcher {
	return &EventDispatcher{
		bus: bus,
		now: time.Now,
	}
}

// PublishDocumentChanged emits a document.changed event for path.
func (s *EventDispatcher) PublishDocumentChanged(ctx context.Context, path string, kind events.ChangeKind) error {
	e := events.DocumentChangedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.DocumentChanged,
			Timestamp: s.now(),
			Source:    "watcher",
			Version:   "1.0",
		},
		Path: path,
		Kind: kind,
	}
	evt, err := eventbus.NewJSONEvent(e.ID, e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return s.bus.Publish(ctx, eventbus.TopicDocumentEvents.Base(), evt)
}
