// internal/domain/models/band.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Band is a named group of musicians.
type Band struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BandMusician is the authoritative join between users and bands.
// Exactly one document per (band_id, user_id).
type BandMusician struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BandID    primitive.ObjectID `bson:"band_id" json:"band_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
