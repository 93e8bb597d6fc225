package models

import "time"

const DefaultPostUserName = "Anonimo"

// Post is a published photo in pubblicazioni/{postId}. It is created by the
// clients; the backend only rewrites Likes.
type Post struct {
	ID           string    `bson:"_id" json:"postId"`
	ImageURL     string    `bson:"imageUrl" json:"imageUrl"`
	ThumbnailURL string    `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	Likes        int64     `bson:"likes" json:"likes"`
	UserName     string    `bson:"userName,omitempty" json:"userName,omitempty"`
	UserPhotoURL string    `bson:"userPhotoURL,omitempty" json:"userPhotoURL,omitempty"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
}

// PostPath returns the document path of a post.
func PostPath(postID string) string {
	return "pubblicazioni/" + postID
}
