// Package sessionpolicy provides the visibility and join predicates for
// live sessions.
//
// Rules:
//   - Access (full control): the session creator, or anyone currently
//     connected to the session.
//   - CanSee: everyone when fan_access is on; otherwise only users with
//     Access or a valid invitation from the creator.
//   - CanJoin: everyone when musician_access is on (open session);
//     otherwise only users with Access or an invitation.
//
// Approval-required sessions additionally reject a fresh join from a user
// with no standing, but that is a write-path validation at the
// connection-creation boundary (connectionstore.Join), not a read
// predicate here. The two consult the same HasStanding check so they
// cannot disagree.
//
// All predicates are read-only; they never mutate state.
package sessionpolicy

import (
	"context"

	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Access reports whether the viewer has full control of the live session:
// the creator, or anyone with a current connection to it.
func Access(ctx context.Context, db *mongo.Database, viewerID primitive.ObjectID, a models.ActiveSession) (bool, error) {
	if viewerID == a.CreatorID {
		return true, nil
	}
	n, err := db.Collection("connections").CountDocuments(ctx, bson.M{
		"active_session_id": a.ID,
		"user_id":           viewerID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Invited reports whether the viewer holds an invitation from the session's
// creator for its parent session.
func Invited(ctx context.Context, db *mongo.Database, viewerID primitive.ObjectID, a models.ActiveSession) (bool, error) {
	n, err := db.Collection("invitations").CountDocuments(ctx, bson.M{
		"sender_id":   a.CreatorID,
		"receiver_id": viewerID,
		"session_id":  a.SessionID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasStanding reports whether the viewer has access or an invitation. This
// is the shared condition behind CanSee, CanJoin, and the approval check
// at join time.
func HasStanding(ctx context.Context, db *mongo.Database, viewerID primitive.ObjectID, a models.ActiveSession) (bool, error) {
	ok, err := Access(ctx, db, viewerID, a)
	if err != nil || ok {
		return ok, err
	}
	return Invited(ctx, db, viewerID, a)
}

// CanSee reports whether the viewer may see the session at all.
func CanSee(ctx context.Context, db *mongo.Database, viewerID primitive.ObjectID, a models.ActiveSession) (bool, error) {
	if a.FanAccess {
		return true, nil
	}
	return HasStanding(ctx, db, viewerID, a)
}

// CanJoin reports whether the viewer may join the session. asMusician is
// accepted for symmetry with the join call; an open session admits both
// musicians and fans unconditionally.
func CanJoin(ctx context.Context, db *mongo.Database, viewerID primitive.ObjectID, a models.ActiveSession, asMusician bool) (bool, error) {
	if a.MusicianAccess {
		return true, nil
	}
	return HasStanding(ctx, db, viewerID, a)
}
