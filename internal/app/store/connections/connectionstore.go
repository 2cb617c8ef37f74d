// internal/app/store/connections/connectionstore.go
package connectionstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/openjam/jamcore/internal/app/policy/sessionpolicy"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c      *mongo.Collection
	active *mongo.Collection
	users  *mongo.Collection
	db     *mongo.Database
}

// ErrApprovalRequired is the validation failure for a fresh join into an
// approval-required session by a user who is neither a member nor invited.
// It mirrors what sessionpolicy.CanJoin would allow; the two must agree.
var ErrApprovalRequired = errors.New("joining this session requires host approval")

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("connections"),
		active: db.Collection("active_sessions"),
		users:  db.Collection("users"),
		db:     db,
	}
}

// Create inserts a standalone (pre-join) connection for a device. A blank
// ClientID gets a generated one.
func (s *Store) Create(ctx context.Context, conn models.Connection) (models.Connection, error) {
	now := time.Now().UTC()
	conn.ID = primitive.NewObjectID()
	if conn.ClientID == "" {
		conn.ClientID = uuid.NewString()
	}
	conn.CreatedAt = now
	conn.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, conn); err != nil {
		return models.Connection{}, err
	}
	return conn, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Connection, error) {
	var conn models.Connection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&conn); err != nil {
		return models.Connection{}, err
	}
	return conn, nil
}

func (s *Store) GetByClientID(ctx context.Context, clientID string) (models.Connection, error) {
	var conn models.Connection
	if err := s.c.FindOne(ctx, bson.M{"client_id": clientID}).Decode(&conn); err != nil {
		return models.Connection{}, err
	}
	return conn, nil
}

// Join attaches a connection to a live session. This is the write-path
// boundary that enforces the approval policy: an approval-required session
// rejects a joiner with no standing (not the creator, not connected, not
// invited), regardless of musician_access.
//
// The owning user's last-known audio latency is refreshed as a ranking
// fallback signal.
func (s *Store) Join(ctx context.Context, connectionID, activeID primitive.ObjectID, asMusician bool, audioLatency int) error {
	conn, err := s.GetByID(ctx, connectionID)
	if err != nil {
		return err
	}
	var a models.ActiveSession
	if err := s.active.FindOne(ctx, bson.M{"_id": activeID}).Decode(&a); err != nil {
		return err
	}

	if a.ApprovalRequired {
		ok, err := sessionpolicy.HasStanding(ctx, s.db, conn.UserID, a)
		if err != nil {
			return err
		}
		if !ok {
			return ErrApprovalRequired
		}
	}

	now := time.Now().UTC()
	_, err = s.c.UpdateByID(ctx, connectionID, bson.M{"$set": bson.M{
		"active_session_id": activeID,
		"as_musician":       asMusician,
		"audio_latency":     audioLatency,
		"updated_at":        now,
	}})
	if err != nil {
		return err
	}
	_, err = s.users.UpdateByID(ctx, conn.UserID, bson.M{"$set": bson.M{
		"last_audio_latency": audioLatency,
		"updated_at":         now,
	}})
	return err
}

// Leave detaches the connection from whatever session it is in.
func (s *Store) Leave(ctx context.Context, connectionID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, connectionID, bson.M{
		"$unset": bson.M{"active_session_id": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Filter narrows ClientIDs. Conditions compose with AND semantics.
type Filter struct {
	// AsMusician keeps only connections whose as_musician flag matches.
	AsMusician *bool
	// ExcludeClientID drops one specific connection.
	ExcludeClientID string
}

// ClientIDs returns the client id of each connection attached to the live
// session, in join (creation) order. It fails only when the session itself
// does not exist.
func (s *Store) ClientIDs(ctx context.Context, activeID primitive.ObjectID, f Filter) ([]string, error) {
	n, err := s.active.CountDocuments(ctx, bson.M{"_id": activeID})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, mongo.ErrNoDocuments
	}

	filter := bson.M{"active_session_id": activeID}
	if f.AsMusician != nil {
		filter["as_musician"] = *f.AsMusician
	}
	if f.ExcludeClientID != "" {
		filter["client_id"] = bson.M{"$ne": f.ExcludeClientID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var conn models.Connection
		if err := cur.Decode(&conn); err != nil {
			return nil, err
		}
		ids = append(ids, conn.ClientID)
	}
	return ids, cur.Err()
}

// ForSession returns the session's connections in join order.
func (s *Store) ForSession(ctx context.Context, activeID primitive.ObjectID) ([]models.Connection, error) {
	byID, err := s.ForSessions(ctx, []primitive.ObjectID{activeID})
	if err != nil {
		return nil, err
	}
	return byID[activeID], nil
}

// ForSessions loads the connections of many sessions in one query, keyed
// by session id and in join order within each session. Listing components
// use this to avoid a query per candidate.
func (s *Store) ForSessions(ctx context.Context, activeIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Connection, error) {
	out := make(map[primitive.ObjectID][]models.Connection, len(activeIDs))
	if len(activeIDs) == 0 {
		return out, nil
	}
	filter := bson.M{"active_session_id": bson.M{"$in": activeIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var conn models.Connection
		if err := cur.Decode(&conn); err != nil {
			return nil, err
		}
		if conn.ActiveSessionID == nil {
			continue
		}
		out[*conn.ActiveSessionID] = append(out[*conn.ActiveSessionID], conn)
	}
	return out, cur.Err()
}
