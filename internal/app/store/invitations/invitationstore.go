// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"time"

	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invitations")}
}

// Create records that sender invited receiver to sessions under sessionID
// (the persistent session).
func (s *Store) Create(ctx context.Context, senderID, receiverID, sessionID primitive.ObjectID) (models.Invitation, error) {
	inv := models.Invitation{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		SessionID:  sessionID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Invitation{}, err
	}
	return inv, nil
}

// Exists reports whether receiver holds an invitation from sender for the
// persistent session. This is what makes a closed session visible and
// joinable to a non-member.
func (s *Store) Exists(ctx context.Context, senderID, receiverID, sessionID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"session_id":  sessionID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SessionIDsForReceiver returns, keyed by (sender, session), every
// invitation the receiver holds. Listing paths use this to tag invited
// sessions without a per-session query.
func (s *Store) SessionIDsForReceiver(ctx context.Context, receiverID primitive.ObjectID) (map[primitive.ObjectID]map[primitive.ObjectID]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{"receiver_id": receiverID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	// session_id -> set of sender ids
	out := make(map[primitive.ObjectID]map[primitive.ObjectID]bool)
	for cur.Next(ctx) {
		var inv models.Invitation
		if err := cur.Decode(&inv); err != nil {
			return nil, err
		}
		senders := out[inv.SessionID]
		if senders == nil {
			senders = make(map[primitive.ObjectID]bool)
			out[inv.SessionID] = senders
		}
		senders[inv.SenderID] = true
	}
	return out, cur.Err()
}
