// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a musician or fan account.
//
// NOTE:
//   - Friendships and band memberships are not embedded here.
//     Use the friendships and band_musicians collections.
//   - LastLocidispid/LastAddr/LastAudioLatency are the last network
//     locator and audio latency reported by any of the user's devices.
//     They are fallback ranking signals when no pairwise Score exists.
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Email  string             `bson:"email" json:"email"`

	LastLocidispid   *int64 `bson:"last_locidispid,omitempty" json:"last_locidispid,omitempty"`
	LastAddr         *int64 `bson:"last_addr,omitempty" json:"last_addr,omitempty"`
	LastAudioLatency int    `bson:"last_audio_latency" json:"last_audio_latency"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
