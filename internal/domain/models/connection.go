// internal/domain/models/connection.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection is a user's presence from one device. A connection exists
// standalone before joining (ActiveSessionID nil) and becomes a membership
// record once attached to an active session.
//
// ClientID is a stable per-device identity and is what peers and the score
// pipeline use to refer to this connection. Locidispid and Addr may be
// absent; a nil locator degrades ranking fidelity but is never an error.
type Connection struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	ActiveSessionID *primitive.ObjectID `bson:"active_session_id,omitempty" json:"active_session_id,omitempty"`

	AsMusician bool   `bson:"as_musician" json:"as_musician"`
	ClientID   string `bson:"client_id" json:"client_id"`

	Locidispid   *int64 `bson:"locidispid,omitempty" json:"locidispid,omitempty"`
	Addr         *int64 `bson:"addr,omitempty" json:"addr,omitempty"`
	IPAddress    string `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	AudioLatency int    `bson:"audio_latency" json:"audio_latency"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
