// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureBands(ctx, db); err != nil {
		problems = append(problems, "bands: "+err.Error())
	}
	if err := ensureSessions(ctx, db); err != nil {
		problems = append(problems, "sessions: "+err.Error())
	}
	if err := ensureConnections(ctx, db); err != nil {
		problems = append(problems, "connections: "+err.Error())
	}
	if err := ensureFriendships(ctx, db); err != nil {
		problems = append(problems, "friendships: "+err.Error())
	}
	if err := ensureInvitations(ctx, db); err != nil {
		problems = append(problems, "invitations: "+err.Error())
	}
	if err := ensureScores(ctx, db); err != nil {
		problems = append(problems, "scores: "+err.Error())
	}
	if err := ensureRecordings(ctx, db); err != nil {
		problems = append(problems, "recordings: "+err.Error())
	}
	if err := ensureShareTokens(ctx, db); err != nil {
		problems = append(problems, "share_tokens: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func unique() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique()},
		{Keys: bson.D{{Key: "name_ci", Value: 1}}},
	})
}

func ensureBands(ctx context.Context, db *mongo.Database) error {
	if err := create(ctx, db, "bands", []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_ci", Value: 1}}},
	}); err != nil {
		return err
	}
	return create(ctx, db, "band_musicians", []mongo.IndexModel{
		{Keys: bson.D{{Key: "band_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique()},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
}

func ensureSessions(ctx context.Context, db *mongo.Database) error {
	if err := create(ctx, db, "sessions", []mongo.IndexModel{
		{Keys: bson.D{{Key: "active_session_id", Value: 1}}},
	}); err != nil {
		return err
	}
	return create(ctx, db, "active_sessions", []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "session_id", Value: 1}}},
		{Keys: bson.D{{Key: "genre_id", Value: 1}}},
	})
}

func ensureConnections(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "connections", []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}, Options: unique()},
		{Keys: bson.D{{Key: "active_session_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
}

func ensureFriendships(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "friendships", []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "friend_id", Value: 1}}, Options: unique()},
	})
}

func ensureInvitations(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "invitations", []mongo.IndexModel{
		{Keys: bson.D{{Key: "receiver_id", Value: 1}}},
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "session_id", Value: 1}}},
	})
}

func ensureScores(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "scores", []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id1", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "client_id2", Value: 1}, {Key: "created_at", Value: 1}}},
	})
}

func ensureRecordings(ctx context.Context, db *mongo.Database) error {
	if err := create(ctx, db, "recordings", []mongo.IndexModel{
		{Keys: bson.D{{Key: "active_session_id", Value: 1}, {Key: "stopped_at", Value: 1}}},
	}); err != nil {
		return err
	}
	return create(ctx, db, "claimed_recordings", []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
}

func ensureShareTokens(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "share_tokens", []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: unique()},
		{Keys: bson.D{{Key: "shareable_id", Value: 1}}},
	})
}
