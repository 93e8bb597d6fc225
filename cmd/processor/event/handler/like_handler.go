package handler

import (
	"context"
	"errors"

	"fotofeed/cmd/internal/logger"
	"fotofeed/cmd/processor/event/trigger"
	"fotofeed/events"
	"fotofeed/repositories"
)

// LikePattern is the document path a like change is reported on.
const LikePattern = "pubblicazioni/{postId}/likes/{userId}"

type LikeCounter interface {
	CountByPost(ctx context.Context, postID string) (int64, error)
}

type PostLikesWriter interface {
	SetLikes(ctx context.Context, postID string, likes int64) error
}

// LikeCountSynchronizer keeps pubblicazioni/{postId}.likes equal to the size
// of the post's likes subcollection. Every change triggers a full recount, so
// duplicate, reordered or overlapping events converge on the same value.
type LikeCountSynchronizer struct {
	likes LikeCounter
	posts PostLikesWriter
}

func NewLikeCountSynchronizer(likes LikeCounter, posts PostLikesWriter) *LikeCountSynchronizer {
	return &LikeCountSynchronizer{likes: likes, posts: posts}
}

// Register binds the synchronizer to every kind of like change.
func (s *LikeCountSynchronizer) Register(r *trigger.Registry) error {
	return r.On(LikePattern, events.ChangeAny, s.Handle)
}

// Handle recounts the likes of the post named in the change path.
// Failures are logged and never returned; the next like change heals the counter.
func (s *LikeCountSynchronizer) Handle(ctx context.Context, change trigger.Change) error {
	postID := change.Params["postId"]
	if postID == "" {
		logger.WarnWithFields("like change without post id", logger.Fields{"path": change.Path})
		return nil
	}

	count, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		logger.ErrorWithFields("failed to count likes", logger.Fields{
			"post_id": postID,
			"error":   err.Error(),
		})
		return nil
	}

	if err := s.posts.SetLikes(ctx, postID, count); err != nil {
		fields := logger.Fields{
			"post_id": postID,
			"likes":   count,
			"error":   err.Error(),
		}
		if errors.Is(err, repositories.ErrPostNotFound) {
			logger.WarnWithFields("like counter target post does not exist", fields)
		} else {
			logger.ErrorWithFields("failed to update like counter", fields)
		}
		return nil
	}

	logger.Log.Debugf("post %s likes set to %d (%s)", postID, count, change.Kind)
	return nil
}
