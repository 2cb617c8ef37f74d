// internal/app/store/sessions/sessionstore.go
package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/openjam/jamcore/internal/app/system/genres"
	"github.com/openjam/jamcore/internal/app/system/htmlsanitize"
	"github.com/openjam/jamcore/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	sessions *mongo.Collection
	active   *mongo.Collection
	tokens   *mongo.Collection
}

var (
	// ErrClaimInProgress is the conflict surfaced when another user already
	// holds the session's recording claim. Callers present it to the user;
	// it is not retryable.
	ErrClaimInProgress = errors.New("a claimed recording is already in progress for this session")

	ErrUnknownGenre = errors.New("unknown genre id")
)

func New(db *mongo.Database) *Store {
	return &Store{
		sessions: db.Collection("sessions"),
		active:   db.Collection("active_sessions"),
		tokens:   db.Collection("share_tokens"),
	}
}

// Create inserts a persistent session and mints its share token.
func (s *Store) Create(ctx context.Context, name string, scheduledStart *time.Time) (models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		ID:             primitive.NewObjectID(),
		Name:           name,
		ScheduledStart: scheduledStart,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	tok := models.ShareToken{
		ID:            primitive.NewObjectID(),
		Token:         uuid.NewString(),
		ShareableID:   sess.ID,
		ShareableType: models.ShareableSession,
		CreatedAt:     now,
	}
	sess.ShareTokenID = &tok.ID

	if _, err := s.sessions.InsertOne(ctx, sess); err != nil {
		return models.Session{}, err
	}
	if _, err := s.tokens.InsertOne(ctx, tok); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) GetSession(ctx context.Context, id primitive.ObjectID) (models.Session, error) {
	var sess models.Session
	if err := s.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// CreateActive opens a live instantiation of a session. The description is
// sanitized and folded for keyword search. The parent session is linked to
// the new live session, and its scheduled_start is backfilled with the
// creation instant when it was never set.
func (s *Store) CreateActive(ctx context.Context, a models.ActiveSession) (models.ActiveSession, error) {
	if !genres.Valid(a.GenreID) {
		return models.ActiveSession{}, ErrUnknownGenre
	}

	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Description = htmlsanitize.Sanitize(a.Description)
	a.DescriptionCI = text.Fold(a.Description)
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.active.InsertOne(ctx, a); err != nil {
		return models.ActiveSession{}, err
	}

	// Backfill scheduled_start only where it is still unset.
	_, err := s.sessions.UpdateOne(ctx,
		bson.M{"_id": a.SessionID, "scheduled_start": nil},
		bson.M{"$set": bson.M{"scheduled_start": now}})
	if err != nil {
		return models.ActiveSession{}, err
	}
	_, err = s.sessions.UpdateByID(ctx, a.SessionID, bson.M{"$set": bson.M{
		"active_session_id": a.ID,
		"updated_at":        now,
	}})
	if err != nil {
		return models.ActiveSession{}, err
	}
	return a, nil
}

func (s *Store) GetActive(ctx context.Context, id primitive.ObjectID) (models.ActiveSession, error) {
	var a models.ActiveSession
	if err := s.active.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.ActiveSession{}, err
	}
	return a, nil
}

// ListActive returns every live session, most recent first. Listing
// components apply their own visibility and integrity filters on top.
func (s *Store) ListActive(ctx context.Context) ([]models.ActiveSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.active.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ActiveSession
	for cur.Next(ctx) {
		var a models.ActiveSession
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

// ClaimStart atomically assigns the session's active recording claim to the
// initiator. The update matches only when the claim is free or already held
// by the same initiator, so two racing initiators resolve to exactly one
// winner; the loser gets ErrClaimInProgress. Never read-then-write here.
func (s *Store) ClaimStart(ctx context.Context, activeID, initiatorID, claimedRecordingID primitive.ObjectID) error {
	filter := bson.M{
		"_id": activeID,
		"$or": bson.A{
			bson.M{"claimed_initiator_id": nil},
			bson.M{"claimed_initiator_id": initiatorID},
		},
	}
	update := bson.M{"$set": bson.M{
		"claimed_recording_id": claimedRecordingID,
		"claimed_initiator_id": initiatorID,
		"updated_at":           time.Now().UTC(),
	}}
	err := s.active.FindOneAndUpdate(ctx, filter, update).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}
	// No match: either the session is missing or someone else holds the
	// claim. Tell those apart for the caller.
	n, cerr := s.active.CountDocuments(ctx, bson.M{"_id": activeID})
	if cerr != nil {
		return cerr
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return ErrClaimInProgress
}

// ClaimStop unconditionally releases the claim. It is idempotent; no
// ownership check is made at this layer.
func (s *Store) ClaimStop(ctx context.Context, activeID primitive.ObjectID) error {
	_, err := s.active.UpdateByID(ctx, activeID, bson.M{
		"$unset": bson.M{
			"claimed_recording_id": "",
			"claimed_initiator_id": "",
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
