// internal/domain/models/score.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score is an undirected pairwise network-quality measurement between two
// connections, identified by each side's (locidispid, client_id, addr)
// triple. Value is a round-trip-time-like metric: lower is better.
//
// The measurement pipeline appends scores continuously; readers pick the
// most recent one per pair. Sides carry no meaning; a pair may be stored
// in either orientation.
type Score struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Locidispid1 *int64 `bson:"locidispid1,omitempty" json:"locidispid1,omitempty"`
	ClientID1   string `bson:"client_id1" json:"client_id1"`
	Addr1       *int64 `bson:"addr1,omitempty" json:"addr1,omitempty"`

	Locidispid2 *int64 `bson:"locidispid2,omitempty" json:"locidispid2,omitempty"`
	ClientID2   string `bson:"client_id2" json:"client_id2"`
	Addr2       *int64 `bson:"addr2,omitempty" json:"addr2,omitempty"`

	Value int    `bson:"value" json:"value"`
	Label string `bson:"label,omitempty" json:"label,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
