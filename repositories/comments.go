package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fotofeed/db"
	"fotofeed/models"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(d *mongo.Database) *CommentRepository {
	return &CommentRepository{col: d.Collection(db.CollectionComments)}
}

// Create appends a comment to its post. The timestamp is assigned by the
// server through $currentDate, so c.Timestamp is ignored.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	filter := bson.M{"_id": c.ID}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, commentInsertUpdate(c), opts)
	return err
}

func commentInsertUpdate(c *models.Comment) bson.M {
	return bson.M{
		"$setOnInsert": bson.M{
			"postId":    c.PostID,
			"text":      c.Text,
			"userId":    c.UserID,
			"userName":  c.UserName,
			"userImage": c.UserImage,
			"flagCount": c.FlagCount,
			"isHidden":  c.IsHidden,
		},
		"$currentDate": bson.M{"timestamp": true},
	}
}
