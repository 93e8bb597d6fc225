package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fotofeed/cmd/internal/logger"
	"fotofeed/events"
)

// Publisher forwards a converted change to the bus.
type Publisher interface {
	PublishDocumentChanged(ctx context.Context, path string, kind events.ChangeKind) error
}

// LikeWatcher tails the likes collection and publishes one event per write.
type LikeWatcher struct {
	col       *mongo.Collection
	publisher Publisher
	// Backoff between reconnect attempts.
	Backoff time.Duration

	resumeToken bson.Raw
}

func NewLikeWatcher(col *mongo.Collection, publisher Publisher) *LikeWatcher {
	return &LikeWatcher{
		col:       col,
		publisher: publisher,
		Backoff:   2 * time.Second,
	}
}

// Run watches until ctx is done, reopening the stream from the last resume token after failures.
func (w *LikeWatcher) Run(ctx context.Context) error {
	for {
		err := w.watchOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Log.Errorf("likes change stream interrupted: %v, reconnecting in %s", err, w.Backoff)
		select {
		case <-time.After(w.Backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *LikeWatcher) watchOnce(ctx context.Context) error {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace", "delete"}}}},
		}}},
	}
	opts := options.ChangeStream()
	if w.resumeToken != nil {
		opts.SetResumeAfter(w.resumeToken)
	}

	cs, err := w.col.Watch(ctx, pipeline, opts)
	if err != nil {
		return fmt.Errorf("open change stream: %w", err)
	}
	defer cs.Close(context.Background())

	logger.Log.Infof("watching %s for like changes", w.col.Name())

	for cs.Next(ctx) {
		var doc ChangeDocument
		if err := cs.Decode(&doc); err != nil {
			logger.Log.Errorf("decode change event: %v", err)
			w.resumeToken = cs.ResumeToken()
			continue
		}

		path, kind, ok := LikeChange(doc)
		if !ok {
			logger.Log.Warnf("skipping change %s on like %q", doc.OperationType, doc.DocumentKey.ID)
			w.resumeToken = cs.ResumeToken()
			continue
		}

		if err := w.publisher.PublishDocumentChanged(ctx, path, kind); err != nil {
			// keep the old token so the change is replayed after reconnect
			return fmt.Errorf("publish %s %s: %w", kind, path, err)
		}
		w.resumeToken = cs.ResumeToken()
	}

	if err := cs.Err(); err != nil {
		return err
	}
	return errors.New("change stream closed")
}
