package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLikeDocumentID(t *testing.T) {
	testCases := []struct {
		id         string
		wantPost   string
		wantUser   string
		wantParsed bool
	}{
		{id: "p1/u1", wantPost: "p1", wantUser: "u1", wantParsed: true},
		{id: LikeDocumentID("post-9", "uid-3"), wantPost: "post-9", wantUser: "uid-3", wantParsed: true},
		{id: "p1"},
		{id: "/u1"},
		{id: "p1/"},
		{id: "p1/u1/extra"},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			post, user, ok := ParseLikeDocumentID(tc.id)
			assert.Equal(t, tc.wantParsed, ok)
			assert.Equal(t, tc.wantPost, post)
			assert.Equal(t, tc.wantUser, user)
		})
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "pubblicazioni/p1", PostPath("p1"))
	assert.Equal(t, "pubblicazioni/p1/likes/u1", LikePath("p1", "u1"))
	assert.Equal(t, "pubblicazioni/p1/comments/c1", CommentPath("p1", "c1"))
}

func TestNewWinnerSnapshotAppliesDefaults(t *testing.T) {
	ts := time.Date(2026, 10, 13, 18, 0, 0, 0, time.UTC)
	s := NewWinnerSnapshot(Post{ID: "p1", ImageURL: "https://img/1.jpg", Likes: 4, Timestamp: ts})

	assert.Equal(t, "p1", s.PostID)
	assert.Equal(t, "https://img/1.jpg", s.ThumbnailURL)
	assert.Equal(t, DefaultPostUserName, s.UserName)
	assert.Nil(t, s.UserPhotoURL)
	assert.Equal(t, int64(4), s.Likes)
	assert.Equal(t, ts, s.Timestamp)
}

func TestNewWinnerSnapshotKeepsExplicitFields(t *testing.T) {
	s := NewWinnerSnapshot(Post{
		ID:           "p2",
		ImageURL:     "https://img/2.jpg",
		ThumbnailURL: "https://img/2_t.jpg",
		UserName:     "Giulia",
		UserPhotoURL: "https://img/giulia.jpg",
		Description:  "tramonto",
	})

	assert.Equal(t, "https://img/2_t.jpg", s.ThumbnailURL)
	assert.Equal(t, "Giulia", s.UserName)
	if assert.NotNil(t, s.UserPhotoURL) {
		assert.Equal(t, "https://img/giulia.jpg", *s.UserPhotoURL)
	}
	assert.Equal(t, "tramonto", s.Description)
}
