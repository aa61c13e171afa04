package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ConnectMongo establishes a MongoDB client connection and verifies it with a
// ping. Connection failures are fatal: the service cannot run without storage.
func ConnectMongo(ctx context.Context, logger *zerolog.Logger, uri string) *mongo.Client {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create MongoDB client")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	return client
}
