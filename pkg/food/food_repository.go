package food

import (
	"context"
	"time"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "food"

type (
	FoodRepository interface {
		FindFoods(ctx context.Context, q FoodQuery) ([]*entities.Food, error)
		GetFoodByID(ctx context.Context, id primitive.ObjectID) (*entities.Food, error)
		AddFood(ctx context.Context, food *entities.Food) (primitive.ObjectID, error)
		UpdateFoodFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (domain.UpdateResult, error)
		DeleteFood(ctx context.Context, id primitive.ObjectID) (int64, error)
		PushNote(ctx context.Context, id primitive.ObjectID, note entities.Note) (domain.UpdateResult, error)

		// Expiry repair
		ScanExpiryDates(ctx context.Context, fn func(id primitive.ObjectID, expiry *entities.DateValue) error) error
		SetExpiryDate(ctx context.Context, id primitive.ObjectID, expiry time.Time) error
	}

	foodRepository struct {
		collection *mongo.Collection
	}
)

func NewFoodRepository(db *mongo.Database) FoodRepository {
	return &foodRepository{collection: db.Collection(CollectionName)}
}

func (r *foodRepository) FindFoods(ctx context.Context, q FoodQuery) ([]*entities.Food, error) {
	cursor, err := r.collection.Find(ctx, foodFilter(q), findOptions(q))
	if err != nil {
		return nil, errors.Wrap(err, "find foods")
	}

	defer cursor.Close(ctx)

	// Decoding is per document so a corrupt one cannot fail the whole list.
	foods := make([]*entities.Food, 0)
	for cursor.Next(ctx) {
		food := new(entities.Food)
		if err := cursor.Decode(food); err != nil {
			log.Warn().Err(err).Str("food_id", cursor.Current.Lookup("_id").String()).Msg("skipping undecodable food")
			continue
		}
		foods = append(foods, food)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate foods")
	}
	return foods, nil
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id primitive.ObjectID) (*entities.Food, error) {
	var food entities.Food
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&food); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, errors.Wrap(err, "find food by id")
	}
	return &food, nil
}

func (r *foodRepository) AddFood(ctx context.Context, food *entities.Food) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, food)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert food")
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	food.ID = id
	return id, nil
}

func (r *foodRepository) UpdateFoodFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (domain.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.M(fields)}},
	)
	if err != nil {
		return domain.UpdateResult{}, errors.Wrap(err, "update food")
	}
	return toUpdateResult(res), nil
}

func (r *foodRepository) DeleteFood(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, errors.Wrap(err, "delete food")
	}
	return res.DeletedCount, nil
}

func (r *foodRepository) PushNote(ctx context.Context, id primitive.ObjectID, note entities.Note) (domain.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "notes", Value: note}}}},
	)
	if err != nil {
		return domain.UpdateResult{}, errors.Wrap(err, "push note")
	}
	return toUpdateResult(res), nil
}

// expiryProjection is what the repair scan decodes. Keeping expiryDate raw
// means one odd document cannot abort the whole cursor.
type expiryProjection struct {
	ID         primitive.ObjectID `bson:"_id"`
	ExpiryDate bson.RawValue      `bson:"expiryDate"`
}

func (r *foodRepository) ScanExpiryDates(ctx context.Context, fn func(id primitive.ObjectID, expiry *entities.DateValue) error) error {
	cursor, err := r.collection.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: FieldExpiryDate, Value: 1}}))
	if err != nil {
		return errors.Wrap(err, "scan foods")
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc expiryProjection
		if err := cursor.Decode(&doc); err != nil {
			return errors.Wrap(err, "decode food")
		}

		var expiry *entities.DateValue
		if doc.ExpiryDate.Type != 0 {
			expiry = new(entities.DateValue)
			if err := expiry.UnmarshalBSONValue(doc.ExpiryDate.Type, doc.ExpiryDate.Value); err != nil {
				expiry = nil
			}
		}

		if err := fn(doc.ID, expiry); err != nil {
			return err
		}
	}
	return errors.Wrap(cursor.Err(), "iterate foods")
}

func (r *foodRepository) SetExpiryDate(ctx context.Context, id primitive.ObjectID, expiry time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: FieldExpiryDate, Value: expiry.UTC()}}}},
	)
	return errors.Wrap(err, "set expiry date")
}

func foodFilter(q FoodQuery) bson.D {
	filter := bson.D{}

	if expiry := bucketFilter(q.Bucket, q.Now); expiry != nil {
		filter = append(filter, bson.E{Key: FieldExpiryDate, Value: expiry})
	}

	if q.UserEmail != "" {
		filter = append(filter, bson.E{Key: FieldUserEmail, Value: q.UserEmail})
	}
	return filter
}

// bucketFilter is the range form of Classify. Range operators only match
// BSON dates, so text and missing expiries never fall in a bucket.
func bucketFilter(bucket Bucket, now time.Time) bson.D {
	from, to := ExpiringSoonRange(now)
	switch bucket {
	case BucketExpired:
		return bson.D{{Key: "$lt", Value: from}}
	case BucketExpiringSoon:
		return bson.D{{Key: "$gte", Value: from}, {Key: "$lte", Value: to}}
	case BucketFresh:
		return bson.D{{Key: "$gt", Value: to}}
	}
	return nil
}

func findOptions(q FoodQuery) *options.FindOptions {
	opts := options.Find()
	if q.SortField != "" && q.SortOrder != SortNone {
		opts.SetSort(bson.D{{Key: q.SortField, Value: int(q.SortOrder)}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}

func toUpdateResult(res *mongo.UpdateResult) domain.UpdateResult {
	return domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}
