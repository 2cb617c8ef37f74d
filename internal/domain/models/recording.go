// internal/domain/models/recording.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recording is the transient capture record for an active session. It is
// "in progress" while StartedAt is set and StoppedAt is not.
type Recording struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActiveSessionID primitive.ObjectID `bson:"active_session_id" json:"active_session_id"`
	OwnerID         primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	StartedAt *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	StoppedAt *time.Time `bson:"stopped_at,omitempty" json:"stopped_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ClaimedRecording is produced by claiming a stopped Recording. Once
// claimed it is a distinct entity and is the only kind of recording an
// ActiveSession may reference as its currently active claim.
type ClaimedRecording struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecordingID primitive.ObjectID `bson:"recording_id" json:"recording_id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	GenreID     string `bson:"genre_id,omitempty" json:"genre_id,omitempty"`
	Public      bool   `bson:"public" json:"public"`

	ShareTokenID *primitive.ObjectID `bson:"share_token_id,omitempty" json:"share_token_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
