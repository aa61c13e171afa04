package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. The password is stored only as an
// argon2id encoded hash and is never serialized in API responses.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Email        string        `bson:"email"          json:"email"`
	FirstName    string        `bson:"first_name"     json:"first_name"`
	LastName     string        `bson:"last_name"      json:"last_name"`
	Country      string        `bson:"country"        json:"country"`
	Image        string        `bson:"image"          json:"image"`
	PasswordHash string        `bson:"password_hash"  json:"-"`
	Verified     bool          `bson:"verified"       json:"verified"`
	CreatedAt    time.Time     `bson:"created_at"     json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"     json:"updated_at"`
}
