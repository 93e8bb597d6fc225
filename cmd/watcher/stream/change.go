package stream

import (
	"fotofeed/events"
	"fotofeed/models"
)

// ChangeDocument is the subset of a MongoDB change stream event the watcher reads.
type ChangeDocument struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

// KindForOperation maps a change stream operationType to a change kind.
func KindForOperation(op string) (events.ChangeKind, bool) {
	switch op {
	case "insert":
		return events.ChangeCreated, true
	case "update", "replace":
		return events.ChangeUpdated, true
	case "delete":
		return events.ChangeDeleted, true
	default:
		return "", false
	}
}

// LikeChange converts a likes collection change into the document path and kind
// the processor triggers on. Only the document key is used, so deletes resolve too.
func LikeChange(doc ChangeDocument) (path string, kind events.ChangeKind, ok bool) {
	kind, ok = KindForOperation(doc.OperationType)
	if !ok {
		return "", "", false
	}
	postID, userID, ok := models.ParseLikeDocumentID(doc.DocumentKey.ID)
	if !ok {
		return "", "", false
	}
	return models.LikePath(postID, userID), kind, true
}
