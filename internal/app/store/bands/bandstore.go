// internal/app/store/bands/bandstore.go
package bandstore

import (
	"context"
	"errors"
	"time"

	"github.com/openjam/jamcore/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c         *mongo.Collection
	musicians *mongo.Collection
}

var ErrDuplicateMembership = errors.New("user is already in this band")

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("bands"),
		musicians: db.Collection("band_musicians"),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Band, error) {
	var b models.Band
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Band{}, err
	}
	return b, nil
}

func (s *Store) Create(ctx context.Context, b models.Band) (models.Band, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.NameCI = text.Fold(b.Name)
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Band{}, err
	}
	return b, nil
}

// AddMusician creates the (band, user) membership edge.
func (s *Store) AddMusician(ctx context.Context, bandID, userID primitive.ObjectID) error {
	doc := bson.M{
		"band_id":    bandID,
		"user_id":    userID,
		"created_at": time.Now().UTC(),
	}
	if _, err := s.musicians.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// RemoveMusician deletes the membership edge for (bandID, userID).
func (s *Store) RemoveMusician(ctx context.Context, bandID, userID primitive.ObjectID) error {
	_, err := s.musicians.DeleteOne(ctx, bson.M{"band_id": bandID, "user_id": userID})
	return err
}

// BandIDsForUser returns the ids of every band the user belongs to.
func (s *Store) BandIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.musicians.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var bm models.BandMusician
		if err := cur.Decode(&bm); err != nil {
			return nil, err
		}
		ids = append(ids, bm.BandID)
	}
	return ids, cur.Err()
}

// IsMember reports whether the user belongs to the band.
func (s *Store) IsMember(ctx context.Context, bandID, userID primitive.ObjectID) (bool, error) {
	n, err := s.musicians.CountDocuments(ctx, bson.M{"band_id": bandID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
