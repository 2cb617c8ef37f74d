// internal/app/store/sharetokens/sharetokenstore.go
package sharetokenstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("share_tokens")}
}

// Mint creates a token for a shareable entity. The token value is a UUID;
// possession of it is the capability.
func (s *Store) Mint(ctx context.Context, shareableID primitive.ObjectID, shareableType string) (models.ShareToken, error) {
	tok := models.ShareToken{
		ID:            primitive.NewObjectID(),
		Token:         uuid.NewString(),
		ShareableID:   shareableID,
		ShareableType: shareableType,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, tok); err != nil {
		return models.ShareToken{}, err
	}
	return tok, nil
}

// GetByShareable returns the token for an entity.
func (s *Store) GetByShareable(ctx context.Context, shareableID primitive.ObjectID) (models.ShareToken, error) {
	var tok models.ShareToken
	if err := s.c.FindOne(ctx, bson.M{"shareable_id": shareableID}).Decode(&tok); err != nil {
		return models.ShareToken{}, err
	}
	return tok, nil
}

// GetByToken resolves a token value back to its entity.
func (s *Store) GetByToken(ctx context.Context, token string) (models.ShareToken, error) {
	var tok models.ShareToken
	if err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&tok); err != nil {
		return models.ShareToken{}, err
	}
	return tok, nil
}
