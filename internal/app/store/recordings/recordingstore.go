// internal/app/store/recordings/recordingstore.go
package recordingstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/openjam/jamcore/internal/app/system/genres"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c       *mongo.Collection
	claimed *mongo.Collection
	tokens  *mongo.Collection
}

var (
	ErrAlreadyRecording = errors.New("a recording is already in progress for this session")
	ErrNotStopped       = errors.New("only a stopped recording can be claimed")
	ErrUnknownGenre     = errors.New("unknown genre id")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("recordings"),
		claimed: db.Collection("claimed_recordings"),
		tokens:  db.Collection("share_tokens"),
	}
}

// Start opens a recording for the session. At most one recording may be in
// progress per session.
func (s *Store) Start(ctx context.Context, activeID, ownerID primitive.ObjectID) (models.Recording, error) {
	existing, err := s.InProgress(ctx, activeID)
	if err != nil {
		return models.Recording{}, err
	}
	if existing != nil {
		return models.Recording{}, ErrAlreadyRecording
	}

	now := time.Now().UTC()
	rec := models.Recording{
		ID:              primitive.NewObjectID(),
		ActiveSessionID: activeID,
		OwnerID:         ownerID,
		StartedAt:       &now,
		CreatedAt:       now,
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.Recording{}, err
	}
	return rec, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Recording, error) {
	var rec models.Recording
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		return models.Recording{}, err
	}
	return rec, nil
}

// Stop marks the recording stopped. Stopping twice keeps the first stop
// time.
func (s *Store) Stop(ctx context.Context, id primitive.ObjectID) (models.Recording, error) {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "stopped_at": nil},
		bson.M{"$set": bson.M{"stopped_at": now}})
	if err != nil {
		return models.Recording{}, err
	}
	return s.GetByID(ctx, id)
}

// InProgress returns the session's started-but-not-stopped recording, or
// nil when there is none. Nothing recording is not an error.
func (s *Store) InProgress(ctx context.Context, activeID primitive.ObjectID) (*models.Recording, error) {
	var rec models.Recording
	err := s.c.FindOne(ctx, bson.M{
		"active_session_id": activeID,
		"started_at":        bson.M{"$ne": nil},
		"stopped_at":        nil,
	}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Claim turns a stopped recording into a ClaimedRecording owned by the
// claimant, minting its share token.
func (s *Store) Claim(ctx context.Context, recordingID, ownerID primitive.ObjectID, name, description, genreID string, public bool) (models.ClaimedRecording, error) {
	if !genres.Valid(genreID) {
		return models.ClaimedRecording{}, ErrUnknownGenre
	}
	rec, err := s.GetByID(ctx, recordingID)
	if err != nil {
		return models.ClaimedRecording{}, err
	}
	if rec.StoppedAt == nil {
		return models.ClaimedRecording{}, ErrNotStopped
	}

	now := time.Now().UTC()
	cr := models.ClaimedRecording{
		ID:          primitive.NewObjectID(),
		RecordingID: recordingID,
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		GenreID:     genreID,
		Public:      public,
		CreatedAt:   now,
	}
	tok := models.ShareToken{
		ID:            primitive.NewObjectID(),
		Token:         uuid.NewString(),
		ShareableID:   cr.ID,
		ShareableType: models.ShareableRecording,
		CreatedAt:     now,
	}
	cr.ShareTokenID = &tok.ID

	if _, err := s.claimed.InsertOne(ctx, cr); err != nil {
		return models.ClaimedRecording{}, err
	}
	if _, err := s.tokens.InsertOne(ctx, tok); err != nil {
		return models.ClaimedRecording{}, err
	}
	return cr, nil
}

func (s *Store) GetClaimedByID(ctx context.Context, id primitive.ObjectID) (models.ClaimedRecording, error) {
	var cr models.ClaimedRecording
	if err := s.claimed.FindOne(ctx, bson.M{"_id": id}).Decode(&cr); err != nil {
		return models.ClaimedRecording{}, err
	}
	return cr, nil
}
