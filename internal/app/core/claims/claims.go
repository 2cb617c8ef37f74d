// Package claims is the recording lifecycle surface for a live session: the
// in-progress recording (start/stop) and the exclusive claim lock over the
// session's active claimed recording.
//
// The claim is the one place in the engine that needs a concurrency
// guarantee: at most one initiator holds it at any instant, and the loser
// of a race sees a deterministic conflict. That is enforced by the session
// store's conditional update, not by anything here.
package claims

import (
	"context"

	recordingstore "github.com/openjam/jamcore/internal/app/store/recordings"
	sessionstore "github.com/openjam/jamcore/internal/app/store/sessions"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrClaimInProgress re-exports the session store conflict so callers need
// only this package.
var ErrClaimInProgress = sessionstore.ErrClaimInProgress

type Claims struct {
	sessions   *sessionstore.Store
	recordings *recordingstore.Store
}

func New(db *mongo.Database) *Claims {
	return &Claims{
		sessions:   sessionstore.New(db),
		recordings: recordingstore.New(db),
	}
}

// Start claims the session's active recording slot for the initiator.
// Re-asserting an existing claim, even with a different claimed recording,
// succeeds; a claim held by someone else fails with ErrClaimInProgress.
func (c *Claims) Start(ctx context.Context, activeID, initiatorID, claimedRecordingID primitive.ObjectID) error {
	return c.sessions.ClaimStart(ctx, activeID, initiatorID, claimedRecordingID)
}

// Stop releases the claim unconditionally. Anyone with access to the
// session may stop it; stopping an unclaimed session is a no-op.
func (c *Claims) Stop(ctx context.Context, activeID primitive.ObjectID) error {
	return c.sessions.ClaimStop(ctx, activeID)
}

// IsRecording reports whether the session has a recording in progress.
// This concerns the transient Recording, not the claim: a session can be
// recording while unclaimed and claimed while not recording.
func (c *Claims) IsRecording(ctx context.Context, activeID primitive.ObjectID) (bool, error) {
	rec, err := c.recordings.InProgress(ctx, activeID)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// StopRecording stops the session's in-progress recording and returns it.
// Nothing recording returns nil, not an error.
func (c *Claims) StopRecording(ctx context.Context, activeID primitive.ObjectID) (*models.Recording, error) {
	rec, err := c.recordings.InProgress(ctx, activeID)
	if err != nil || rec == nil {
		return nil, err
	}
	stopped, err := c.recordings.Stop(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return &stopped, nil
}
