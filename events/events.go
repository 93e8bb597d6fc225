package events

import (
	"time"
)

// EventType identifies the payload carried on the bus.
type EventType string

const (
	DocumentChanged EventType = "document.changed"
)

// ChangeKind is the kind of write observed on a document.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
	// ChangeAny matches every kind when registering a trigger.
	ChangeAny ChangeKind = "any"
)

// Matches reports whether a registration for k accepts an observed change.
func (k ChangeKind) Matches(observed ChangeKind) bool {
	return k == ChangeAny || k == observed
}

// BaseEvent is embedded by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

func (e BaseEvent) GetType() EventType {
	return e.Type
}

// DocumentChangedEvent announces a create, update or delete on a document.
// Path is the full document path, e.g. pubblicazioni/{postId}/likes/{userId}.
type DocumentChangedEvent struct {
	BaseEvent
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`
}
