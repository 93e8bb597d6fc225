package models

import "time"

const DailyWinnerDocumentID = "vincitoreDelGiorno"

// DailyWinner is the singleton configurazioniApp/vincitoreDelGiorno.
// Exactly one of Winner and Message is set.
type DailyWinner struct {
	HasWinner    bool            `bson:"hasWinner" json:"hasWinner"`
	Winner       *WinnerSnapshot `bson:"winner,omitempty" json:"winner,omitempty"`
	Message      string          `bson:"message,omitempty" json:"message,omitempty"`
	CalculatedAt time.Time       `bson:"calculatedAt,omitempty" json:"calculatedAt"`
}

// WinnerSnapshot embeds the winning post as it was at aggregation time.
type WinnerSnapshot struct {
	PostID       string    `bson:"postId" json:"postId"`
	ImageURL     string    `bson:"imageUrl" json:"imageUrl"`
	ThumbnailURL string    `bson:"thumbnailUrl" json:"thumbnailUrl"`
	Likes        int64     `bson:"likes" json:"likes"`
	UserName     string    `bson:"userName" json:"userName"`
	UserPhotoURL *string   `bson:"userPhotoURL" json:"userPhotoURL"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	Description  string    `bson:"description" json:"description"`
}

// NewWinnerSnapshot copies p, applying the defaults readers expect.
func NewWinnerSnapshot(p Post) WinnerSnapshot {
	s := WinnerSnapshot{
		PostID:       p.ID,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		Likes:        p.Likes,
		UserName:     p.UserName,
		Timestamp:    p.Timestamp,
		Description:  p.Description,
	}
	if s.ThumbnailURL == "" {
		s.ThumbnailURL = p.ImageURL
	}
	if s.UserName == "" {
		s.UserName = DefaultPostUserName
	}
	if p.UserPhotoURL != "" {
		photo := p.UserPhotoURL
		s.UserPhotoURL = &photo
	}
	return s
}
