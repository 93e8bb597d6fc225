package winner

import (
	"context"
	"time"

	"fotofeed/cmd/internal/logger"
	"fotofeed/models"
)

// NoPostsMessage is stored when the window contains no posts.
const NoPostsMessage = "Nessuna pubblicazione nelle ultime 24 ore."

type PostFinder interface {
	FindCreatedSince(ctx context.Context, since time.Time) ([]models.Post, error)
}

type WinnerWriter interface {
	Save(ctx context.Context, w models.DailyWinner) error
}

// Aggregator picks the most liked post of the trailing window and overwrites
// configurazioniApp/vincitoreDelGiorno.
type Aggregator struct {
	posts  PostFinder
	writer WinnerWriter
	window time.Duration
	now    func() time.Time
}

func NewAggregator(posts PostFinder, writer WinnerWriter, window time.Duration) *Aggregator {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Aggregator{
		posts:  posts,
		writer: writer,
		window: window,
		now:    time.Now,
	}
}

// Run performs one aggregation. Failures are logged; the next scheduled run starts from scratch.
func (a *Aggregator) Run(ctx context.Context) {
	since := a.now().Add(-a.window)

	posts, err := a.posts.FindCreatedSince(ctx, since)
	if err != nil {
		logger.ErrorWithFields("failed to query posts for daily winner", logger.Fields{
			"since": since.Format(time.RFC3339),
			"error": err.Error(),
		})
		return
	}

	result := SelectWinner(posts)
	if err := a.writer.Save(ctx, result); err != nil {
		logger.ErrorWithFields("failed to save daily winner", logger.Fields{
			"has_winner": result.HasWinner,
			"error":      err.Error(),
		})
		return
	}

	if result.HasWinner {
		logger.InfoWithFields("daily winner saved", logger.Fields{
			"post_id":    result.Winner.PostID,
			"likes":      result.Winner.Likes,
			"candidates": len(posts),
		})
	} else {
		logger.InfoWithFields("no posts in window, daily winner cleared", logger.Fields{
			"since": since.Format(time.RFC3339),
		})
	}
}

// SelectWinner expects posts newest first. Only a strictly greater like count
// replaces the candidate, so the most recent post wins ties.
func SelectWinner(posts []models.Post) models.DailyWinner {
	if len(posts) == 0 {
		return models.DailyWinner{HasWinner: false, Message: NoPostsMessage}
	}

	var best *models.Post
	maxLikes := int64(-1)
	for i := range posts {
		if posts[i].Likes > maxLikes {
			maxLikes = posts[i].Likes
			best = &posts[i]
		}
	}
	if best == nil {
		// corrupt negative counters only
		best = &posts[0]
	}

	snapshot := models.NewWinnerSnapshot(*best)
	return models.DailyWinner{HasWinner: true, Winner: &snapshot}
}
