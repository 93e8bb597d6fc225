package models

import "strings"

// Like is an existence-only record, one per (post, user). The document id
// "{postId}/{userId}" is the uniqueness constraint and keeps the parent post
// recoverable from the document key alone, even after deletion.
type Like struct {
	ID     string `bson:"_id" json:"id"`
	PostID string `bson:"postId" json:"postId"`
	UserID string `bson:"userId" json:"userId"`
}

func LikeDocumentID(postID, userID string) string {
	return postID + "/" + userID
}

// ParseLikeDocumentID splits a like document id into its post and user parts.
func ParseLikeDocumentID(id string) (postID, userID string, ok bool) {
	postID, userID, found := strings.Cut(id, "/")
	if !found || postID == "" || userID == "" || strings.Contains(userID, "/") {
		return "", "", false
	}
	return postID, userID, true
}

// LikePath returns pubblicazioni/{postId}/likes/{userId}.
func LikePath(postID, userID string) string {
	return PostPath(postID) + "/likes/" + userID
}
