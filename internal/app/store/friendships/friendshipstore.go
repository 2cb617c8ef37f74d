// internal/app/store/friendships/friendshipstore.go
package friendshipstore

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
	return &Store{c: db.Collection("friendships")}
}

// Add creates a single directed edge user -> friend. Callers wanting a
// mutual friendship call AddMutual.
func (s *Store) Add(ctx context.Context, userID, friendID primitive.ObjectID) error {
	doc := bson.M{
		"user_id":    userID,
		"friend_id":  friendID,
		"created_at": time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, doc)
	return err
}

// AddMutual stores both directed edges for a mutual friendship.
func (s *Store) AddMutual(ctx context.Context, a, b primitive.ObjectID) error {
	if err := s.Add(ctx, a, b); err != nil {
		return err
	}
	return s.Add(ctx, b, a)
}

// FriendIDs returns the users that userID points at (the user_id -> friend_id
// direction). All predicates in this codebase read this direction only;
// the reverse edge is never consulted, so an asymmetric graph behaves
// asymmetrically.
func (s *Store) FriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var f models.Friendship
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		ids = append(ids, f.FriendID)
	}
	return ids, cur.Err()
}

// Remove deletes the directed edge user -> friend.
func (s *Store) Remove(ctx context.Context, userID, friendID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "friend_id": friendID})
	return err
}
