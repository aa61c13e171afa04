package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VerificationCode is a single-use token proving control of an email address
// or authorizing a password reset. A code carries no expiry: it stays valid
// until it is consumed or its owning user is deleted.
type VerificationCode struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string        `bson:"code"          json:"code"`
	UserID    bson.ObjectID `bson:"user_id"       json:"user_id"`
	CreatedAt time.Time     `bson:"created_at"    json:"created_at"`
}
