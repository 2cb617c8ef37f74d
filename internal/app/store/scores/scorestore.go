// internal/app/store/scores/scorestore.go
package scorestore

import (
	"context"
	"time"

	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("scores")}
}

// Create appends a measurement between two endpoints. Sides carry no
// meaning; the measurement pipeline reports whichever orientation it has.
func (s *Store) Create(ctx context.Context, loc1 *int64, clientID1 string, addr1 *int64, loc2 *int64, clientID2 string, addr2 *int64, value int, label string) (models.Score, error) {
	sc := models.Score{
		ID:          primitive.NewObjectID(),
		Locidispid1: loc1,
		ClientID1:   clientID1,
		Addr1:       addr1,
		Locidispid2: loc2,
		ClientID2:   clientID2,
		Addr2:       addr2,
		Value:       value,
		Label:       label,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sc); err != nil {
		return models.Score{}, err
	}
	return sc, nil
}

// LatestByPeer returns, for every endpoint the given connection has been
// measured against, the most recent score value keyed by the peer's
// client_id. Client id is the stable half of the endpoint triple; the
// locator parts churn as devices move networks, so they are not part of
// the key.
//
// A connection with no measurements gets an empty map, never an error.
func (s *Store) LatestByPeer(ctx context.Context, clientID string) (map[string]int, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"client_id1": clientID},
		bson.M{"client_id2": clientID},
	}}
	// Oldest first so later documents overwrite earlier ones per peer.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int)
	for cur.Next(ctx) {
		var sc models.Score
		if err := cur.Decode(&sc); err != nil {
			return nil, err
		}
		peer := sc.ClientID2
		if sc.ClientID2 == clientID {
			peer = sc.ClientID1
		}
		if peer == "" || peer == clientID {
			continue
		}
		out[peer] = sc.Value
	}
	return out, cur.Err()
}
