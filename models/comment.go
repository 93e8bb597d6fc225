package models

import "time"

const DefaultCommentUserName = "Utente"

// Comment lives under pubblicazioni/{postId}/comments/{commentId}. Only the
// comment pipeline creates comments, and only after moderation passed.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	PostID    string    `bson:"postId" json:"postId"`
	Text      string    `bson:"text" json:"text"`
	UserID    string    `bson:"userId" json:"userId"`
	UserName  string    `bson:"userName" json:"userName"`
	UserImage *string   `bson:"userImage" json:"userImage"`
	Timestamp time.Time `bson:"timestamp,omitempty" json:"timestamp"`
	FlagCount int       `bson:"flagCount" json:"flagCount"`
	IsHidden  bool      `bson:"isHidden" json:"isHidden"`
}

func CommentPath(postID, commentID string) string {
	return PostPath(postID) + "/comments/" + commentID
}
