package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fotofeed/db"
	"fotofeed/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(d *mongo.Database) *PostRepository {
	return &PostRepository{col: d.Collection(db.CollectionPosts)}
}

// SetLikes overwrites the derived like counter of a post.
func (r *PostRepository) SetLikes(ctx context.Context, postID string, likes int64) error {
	res, err := r.col.UpdateByID(ctx, postID, bson.M{
		"$set": bson.M{"likes": likes},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// FindCreatedSince returns posts with timestamp >= since, newest first.
func (r *PostRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]models.Post, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": since}}
	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
