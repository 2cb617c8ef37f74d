// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var fixtureCounter int64

func nextN() int64 { return atomic.AddInt64(&fixtureCounter, 1) }

// CreateUser inserts a user with a unique email derived from name.
func CreateUser(t *testing.T, ctx context.Context, db *mongo.Database, name string) models.User {
	t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     fmt.Sprintf("%s-%d@test.local", text.Fold(name), nextN()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("users").InsertOne(ctx, u); err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	return u
}

// CreateSession inserts a persistent session.
func CreateSession(t *testing.T, ctx context.Context, db *mongo.Database, name string, scheduledStart *time.Time) models.Session {
	t.Helper()
	now := time.Now().UTC()
	s := models.Session{
		ID:             primitive.NewObjectID(),
		Name:           name,
		ScheduledStart: scheduledStart,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := db.Collection("sessions").InsertOne(ctx, s); err != nil {
		t.Fatalf("failed to insert session: %v", err)
	}
	return s
}

// CreateActiveSession inserts the given active session, filling in an ID,
// parent session, and timestamps when unset. Access flags and domain fields
// are taken as given so tests control visibility precisely.
func CreateActiveSession(t *testing.T, ctx context.Context, db *mongo.Database, a models.ActiveSession) models.ActiveSession {
	t.Helper()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.SessionID.IsZero() {
		parent := CreateSession(t, ctx, db, fmt.Sprintf("session-%d", nextN()), nil)
		a.SessionID = parent.ID
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	if a.Description != "" && a.DescriptionCI == "" {
		a.DescriptionCI = text.Fold(a.Description)
	}
	if _, err := db.Collection("active_sessions").InsertOne(ctx, a); err != nil {
		t.Fatalf("failed to insert active session: %v", err)
	}
	return a
}

// JoinConnection inserts a connection already attached to an active session.
func JoinConnection(t *testing.T, ctx context.Context, db *mongo.Database, userID, activeID primitive.ObjectID, asMusician bool, audioLatency int) models.Connection {
	t.Helper()
	now := time.Now().UTC()
	c := models.Connection{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		ActiveSessionID: &activeID,
		AsMusician:      asMusician,
		ClientID:        uuid.NewString(),
		AudioLatency:    audioLatency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := db.Collection("connections").InsertOne(ctx, c); err != nil {
		t.Fatalf("failed to insert connection: %v", err)
	}
	return c
}

// CreateConnection inserts a standalone connection (not in any session).
func CreateConnection(t *testing.T, ctx context.Context, db *mongo.Database, userID primitive.ObjectID, audioLatency int) models.Connection {
	t.Helper()
	now := time.Now().UTC()
	loc := int64(nextN())
	addr := int64(nextN())
	c := models.Connection{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ClientID:     uuid.NewString(),
		Locidispid:   &loc,
		Addr:         &addr,
		AudioLatency: audioLatency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.Collection("connections").InsertOne(ctx, c); err != nil {
		t.Fatalf("failed to insert connection: %v", err)
	}
	return c
}

// CreateFriendship inserts a single directed friendship edge.
func CreateFriendship(t *testing.T, ctx context.Context, db *mongo.Database, userID, friendID primitive.ObjectID) {
	t.Helper()
	f := models.Friendship{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		FriendID:  friendID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.Collection("friendships").InsertOne(ctx, f); err != nil {
		t.Fatalf("failed to insert friendship: %v", err)
	}
}

// CreateMutualFriendship inserts both directed edges between a and b.
func CreateMutualFriendship(t *testing.T, ctx context.Context, db *mongo.Database, a, b primitive.ObjectID) {
	t.Helper()
	CreateFriendship(t, ctx, db, a, b)
	CreateFriendship(t, ctx, db, b, a)
}

// CreateInvitation inserts an invitation from sender to receiver for the
// persistent session.
func CreateInvitation(t *testing.T, ctx context.Context, db *mongo.Database, senderID, receiverID, sessionID primitive.ObjectID) {
	t.Helper()
	inv := models.Invitation{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		SessionID:  sessionID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := db.Collection("invitations").InsertOne(ctx, inv); err != nil {
		t.Fatalf("failed to insert invitation: %v", err)
	}
}

// CreateScore inserts a pairwise score between two client IDs at the given
// time. Tests control createdAt so "latest wins" semantics can be exercised.
func CreateScore(t *testing.T, ctx context.Context, db *mongo.Database, clientID1, clientID2 string, value int, createdAt time.Time) models.Score {
	t.Helper()
	loc1 := int64(nextN())
	loc2 := int64(nextN())
	sc := models.Score{
		ID:          primitive.NewObjectID(),
		Locidispid1: &loc1,
		ClientID1:   clientID1,
		Locidispid2: &loc2,
		ClientID2:   clientID2,
		Value:       value,
		CreatedAt:   createdAt,
	}
	if _, err := db.Collection("scores").InsertOne(ctx, sc); err != nil {
		t.Fatalf("failed to insert score: %v", err)
	}
	return sc
}

// CreateBand inserts a band and memberships for the given users.
func CreateBand(t *testing.T, ctx context.Context, db *mongo.Database, name string, memberIDs ...primitive.ObjectID) models.Band {
	t.Helper()
	now := time.Now().UTC()
	b := models.Band{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("bands").InsertOne(ctx, b); err != nil {
		t.Fatalf("failed to insert band: %v", err)
	}
	for _, uid := range memberIDs {
		bm := models.BandMusician{
			ID:        primitive.NewObjectID(),
			BandID:    b.ID,
			UserID:    uid,
			CreatedAt: now,
		}
		if _, err := db.Collection("band_musicians").InsertOne(ctx, bm); err != nil {
			t.Fatalf("failed to insert band musician: %v", err)
		}
	}
	return b
}

// CreateMountWithServer inserts an icecast server (with the given config
// push time, possibly nil) and a mount on it, returning the mount.
func CreateMountWithServer(t *testing.T, ctx context.Context, db *mongo.Database, configUpdatedAt *time.Time) models.IcecastMount {
	t.Helper()
	now := time.Now().UTC()
	srv := models.IcecastServer{
		ID:              primitive.NewObjectID(),
		Host:            "icecast.test.local",
		Port:            8000,
		ConfigUpdatedAt: configUpdatedAt,
		CreatedAt:       now,
	}
	if _, err := db.Collection("icecast_servers").InsertOne(ctx, srv); err != nil {
		t.Fatalf("failed to insert icecast server: %v", err)
	}
	m := models.IcecastMount{
		ID:        primitive.NewObjectID(),
		ServerID:  srv.ID,
		Name:      fmt.Sprintf("/stream-%d", nextN()),
		CreatedAt: now,
	}
	if _, err := db.Collection("icecast_mounts").InsertOne(ctx, m); err != nil {
		t.Fatalf("failed to insert icecast mount: %v", err)
	}
	return m
}
