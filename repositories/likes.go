package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fotofeed/db"
)

type LikeRepository struct {
	col *mongo.Collection
}

func NewLikeRepository(d *mongo.Database) *LikeRepository {
	return &LikeRepository{col: d.Collection(db.CollectionLikes)}
}

// Collection exposes the underlying collection for the change stream watcher.
func (r *LikeRepository) Collection() *mongo.Collection {
	return r.col
}

// CountByPost returns the cardinality of pubblicazioni/{postId}/likes.
func (r *LikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"postId": postID})
}
