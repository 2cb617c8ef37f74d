// internal/domain/models/session.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the persistent, long-lived room a jam happens in. It outlives
// any single live instantiation.
//
// ScheduledStart is backfilled from the first ActiveSession's creation time
// when it was never set explicitly.
type Session struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	ScheduledStart  *time.Time          `bson:"scheduled_start,omitempty" json:"scheduled_start,omitempty"`
	ActiveSessionID *primitive.ObjectID `bson:"active_session_id,omitempty" json:"active_session_id,omitempty"`
	ShareTokenID    *primitive.ObjectID `bson:"share_token_id,omitempty" json:"share_token_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ActiveSession is the live instantiation of a Session while it is open.
//
// Access flags:
//   - MusicianAccess: anyone may join as a musician (open session).
//   - FanAccess: anyone may view; when false, only members/creator/invitees.
//   - ApprovalRequired: a fresh join as musician needs host approval; this
//     is enforced at the connection-creation boundary, not by the read
//     predicates.
//
// ClaimedRecordingID/ClaimedInitiatorID form the claim lock: at most one
// initiator holds them at any instant. They are only ever written through
// the session store's conditional update.
type ActiveSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID primitive.ObjectID `bson:"session_id" json:"session_id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`

	MusicianAccess   bool `bson:"musician_access" json:"musician_access"`
	FanAccess        bool `bson:"fan_access" json:"fan_access"`
	ApprovalRequired bool `bson:"approval_required" json:"approval_required"`

	GenreID       string `bson:"genre_id,omitempty" json:"genre_id,omitempty"`
	Language      string `bson:"language,omitempty" json:"language,omitempty"`
	Description   string `bson:"description,omitempty" json:"description,omitempty"`
	DescriptionCI string `bson:"description_ci,omitempty" json:"description_ci,omitempty"`

	BandID  *primitive.ObjectID `bson:"band_id,omitempty" json:"band_id,omitempty"`
	MountID *primitive.ObjectID `bson:"mount_id,omitempty" json:"mount_id,omitempty"`

	ClaimedRecordingID *primitive.ObjectID `bson:"claimed_recording_id,omitempty" json:"claimed_recording_id,omitempty"`
	ClaimedInitiatorID *primitive.ObjectID `bson:"claimed_initiator_id,omitempty" json:"claimed_initiator_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
