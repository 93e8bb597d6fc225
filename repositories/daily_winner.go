package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fotofeed/db"
	"fotofeed/models"
)

type DailyWinnerRepository struct {
	col *mongo.Collection
}

func NewDailyWinnerRepository(d *mongo.Database) *DailyWinnerRepository {
	return &DailyWinnerRepository{col: d.Collection(db.CollectionAppConfig)}
}

// Save overwrites configurazioniApp/vincitoreDelGiorno. calculatedAt is
// assigned by the server.
func (r *DailyWinnerRepository) Save(ctx context.Context, w models.DailyWinner) error {
	filter := bson.M{"_id": models.DailyWinnerDocumentID}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, dailyWinnerUpdate(w), opts)
	return err
}

// Get returns the current record or ErrDailyWinnerNotFound.
func (r *DailyWinnerRepository) Get(ctx context.Context) (*models.DailyWinner, error) {
	var w models.DailyWinner
	err := r.col.FindOne(ctx, bson.M{"_id": models.DailyWinnerDocumentID}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDailyWinnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// dailyWinnerUpdate keeps exactly one of winner/message on the document.
func dailyWinnerUpdate(w models.DailyWinner) bson.M {
	set := bson.M{"hasWinner": w.HasWinner}
	unset := bson.M{}
	if w.HasWinner {
		set["winner"] = w.Winner
		unset["message"] = ""
	} else {
		set["message"] = w.Message
		unset["winner"] = ""
	}
	return bson.M{
		"$set":         set,
		"$unset":       unset,
		"$currentDate": bson.M{"calculatedAt": true},
	}
}
