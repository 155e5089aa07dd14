package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"Expiry-Food-Track/internal/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoURI returns MONGODB_URI when set, otherwise builds an Atlas SRV URI
// from the DB_* keys.
func MongoURI() string {
	if uri := utils.GetConfig("MONGODB_URI"); uri != "" {
		return uri
	}
	return fmt.Sprintf(
		"mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(utils.GetConfig("DB_USER")),
		url.QueryEscape(utils.GetConfig("DB_PASS")),
		utils.GetConfig("DB_HOST"),
		url.QueryEscape(utils.GetConfig("DB_APP_NAME")),
	)
}

// ConnectDB opens the client with the Stable API v1 in strict mode and pings
// the primary before handing back the database.
func ConnectDB(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	timeout := utils.GetConfigDuration("DB_TIMEOUT", 10*time.Second)

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(err, "ping mongodb")
	}

	name := utils.GetConfig("DB_NAME")
	log.Info().Str("database", name).Msg("connected to mongodb")
	return client, client.Database(name), nil
}
