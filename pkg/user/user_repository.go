package user

import (
	"context"

	"Expiry-Food-Track/entities"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "user"

type (
	UserRepository interface {
		GetUsers(ctx context.Context) ([]entities.User, error)
		CreateUser(ctx context.Context, profile entities.User) (primitive.ObjectID, error)
	}

	userRepository struct {
		collection *mongo.Collection
	}
)

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection(CollectionName)}
}

func (r *userRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find users")
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}

	users := make([]entities.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, entities.User(doc))
	}
	return users, nil
}

func (r *userRepository) CreateUser(ctx context.Context, profile entities.User) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, bson.M(profile))
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert user")
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
