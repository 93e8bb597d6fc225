package repositories

import "errors"

var (
	// ErrPostNotFound is returned when an update targets a post that no longer exists.
	ErrPostNotFound = errors.New("post not found")

	// ErrDailyWinnerNotFound means the aggregator has not produced a record yet.
	ErrDailyWinnerNotFound = errors.New("daily winner not calculated yet")
)
