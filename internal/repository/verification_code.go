package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gfermin360/user-verification-api/internal/model"
)

// VerificationCodeRepository defines the interface for verification code
// database operations.
type VerificationCodeRepository interface {
	// CreateCode persists a freshly issued verification code.
	CreateCode(ctx context.Context, code *model.VerificationCode) (*model.VerificationCode, error)

	// ConsumeCode atomically looks up a code by its exact string value and
	// deletes it, returning the deleted document. A code can therefore be
	// redeemed at most once even under concurrent requests.
	ConsumeCode(ctx context.Context, code string) (*model.VerificationCode, error)

	// DeleteCodesByUserID removes all outstanding codes owned by a user.
	DeleteCodesByUserID(ctx context.Context, userID string) (int64, error)

	// CountCodesByUserID reports how many codes are outstanding for a user.
	CountCodesByUserID(ctx context.Context, userID string) (int64, error)
}

const verificationCodeCollection = "verification_codes"

type verificationCodeMongoRepository struct {
	db *mongo.Database
}

// NewVerificationCodeMongoRepository creates a MongoDB repository for
// verification codes and ensures its indexes exist. Codes carry no TTL index:
// they remain redeemable until consumed or cascade-deleted with their user.
func NewVerificationCodeMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) VerificationCodeRepository {
	collection := db.Collection(verificationCodeCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create verification code indexes")
	}

	return &verificationCodeMongoRepository{db: db}
}

func (r *verificationCodeMongoRepository) CreateCode(
	ctx context.Context,
	code *model.VerificationCode,
) (*model.VerificationCode, error) {
	code.CreatedAt = time.Now()

	result, err := r.db.Collection(verificationCodeCollection).InsertOne(ctx, code)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		code.ID = objectID
	}

	return code, nil
}

func (r *verificationCodeMongoRepository) ConsumeCode(
	ctx context.Context,
	code string,
) (*model.VerificationCode, error) {
	result := r.db.Collection(verificationCodeCollection).FindOneAndDelete(ctx, bson.M{"code": code})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var verificationCode model.VerificationCode
	if err := result.Decode(&verificationCode); err != nil {
		return nil, err
	}

	return &verificationCode, nil
}

func (r *verificationCodeMongoRepository) DeleteCodesByUserID(
	ctx context.Context,
	userID string,
) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, err
	}

	result, err := r.db.Collection(verificationCodeCollection).DeleteMany(ctx, bson.M{"user_id": objectID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *verificationCodeMongoRepository) CountCodesByUserID(
	ctx context.Context,
	userID string,
) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, err
	}

	return r.db.Collection(verificationCodeCollection).CountDocuments(ctx, bson.M{"user_id": objectID})
}
