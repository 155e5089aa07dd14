package migration

import (
	"context"

	"Expiry-Food-Track/pkg/food"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoodIndexes backs the expiry range filters, the recent sort and the owner
// lookup.
func FoodIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: food.FieldExpiryDate, Value: 1}},
			Options: options.Index().SetName("expiryDate_1"),
		},
		{
			Keys:    bson.D{{Key: food.FieldAddedDate, Value: -1}},
			Options: options.Index().SetName("addedDate_-1"),
		},
		{
			Keys:    bson.D{{Key: food.FieldUserEmail, Value: 1}},
			Options: options.Index().SetName("userEmail_1"),
		},
	}
}

// Migrate creates the food indexes. It is safe to run on every start.
func Migrate(ctx context.Context, db *mongo.Database) error {
	names, err := db.Collection(food.CollectionName).Indexes().CreateMany(ctx, FoodIndexes())
	if err != nil {
		return errors.Wrap(err, "create food indexes")
	}

	log.Info().Strs("indexes", names).Msg("database migration complete")
	return nil
}
