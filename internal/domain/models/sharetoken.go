// internal/domain/models/sharetoken.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shareable types referenced by ShareToken.
const (
	ShareableSession   = "session"
	ShareableRecording = "recording"
)

// ShareToken is an unguessable capability handle for sharing a session or a
// claimed recording outside the platform.
type ShareToken struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token         string             `bson:"token" json:"token"`
	ShareableID   primitive.ObjectID `bson:"shareable_id" json:"shareable_id"`
	ShareableType string             `bson:"shareable_type" json:"shareable_type"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
