// internal/app/core/netrank/view.go
package netrank

import (
	"context"
	"time"

	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// view is the preloaded state one search runs against: the candidate
// sessions, their members, the viewer's social edges, and the searching
// connection's score table. Loading it all up front keeps the per-candidate
// work free of queries.
type view struct {
	viewerID   primitive.ObjectID
	candidates []models.ActiveSession
	members    map[primitive.ObjectID][]models.Connection
	friendSet  map[primitive.ObjectID]bool
	invites    map[primitive.ObjectID]map[primitive.ObjectID]bool

	searcher   *models.Connection
	peerScores map[string]int

	starts map[primitive.ObjectID]*time.Time
}

func (s *Search) buildView(ctx context.Context, viewerID primitive.ObjectID, clientID string) (*view, error) {
	v := &view{
		viewerID:   viewerID,
		peerScores: map[string]int{},
		starts:     map[primitive.ObjectID]*time.Time{},
	}

	var err error
	v.candidates, err = s.sessions.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(v.candidates))
	for i, c := range v.candidates {
		ids[i] = c.ID
	}
	v.members, err = s.connections.ForSessions(ctx, ids)
	if err != nil {
		return nil, err
	}

	friendIDs, err := s.friendships.FriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	v.friendSet = make(map[primitive.ObjectID]bool, len(friendIDs))
	for _, id := range friendIDs {
		v.friendSet[id] = true
	}

	v.invites, err = s.invitations.SessionIDsForReceiver(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// The searching connection is optional: without it the search still
	// filters and tags, it just has no latency to report.
	if clientID != "" {
		conn, err := s.connections.GetByClientID(ctx, clientID)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, err
		}
		if err == mongo.ErrNoDocuments {
			s.log.Debug("searching connection not found, latency degraded",
				zap.String("client_id", clientID))
		}
		if err == nil {
			v.searcher = &conn
			v.peerScores, err = s.scores.LatestByPeer(ctx, clientID)
			if err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// canSee mirrors sessionpolicy.CanSee over the preloaded data.
func (v *view) canSee(c models.ActiveSession) bool {
	if c.FanAccess {
		return true
	}
	if v.viewerID == c.CreatorID {
		return true
	}
	for _, m := range v.members[c.ID] {
		if m.UserID == v.viewerID {
			return true
		}
	}
	return v.invites[c.SessionID][c.CreatorID]
}

// tag classifies the session's relation to the viewer: an invitation beats
// a friend in the session beats nothing.
func (v *view) tag(c models.ActiveSession) string {
	if v.invites[c.SessionID][c.CreatorID] {
		return TagInvited
	}
	for _, m := range v.members[c.ID] {
		if v.friendSet[m.UserID] {
			return TagFriend
		}
	}
	return TagNone
}

// memberLatency estimates the combined latency between the searching
// connection and one member: the searcher's own audio latency, plus the
// pairwise score (or, with no score, the member's latency again as a stand
// in), plus the member's audio latency, halved. Integer arithmetic
// throughout; the figure is a comparable rank, not a measurement.
func (v *view) memberLatency(m models.Connection) int {
	if v.searcher == nil {
		return NoLatency
	}
	mid, ok := v.peerScores[m.ClientID]
	if !ok {
		mid = m.AudioLatency
	}
	return (v.searcher.AudioLatency + mid + m.AudioLatency) / 2
}

// scheduledStart resolves (and caches) the parent session's scheduled
// start, which the day filter matches against.
func (v *view) scheduledStart(ctx context.Context, s *Search, sessionID primitive.ObjectID) (*time.Time, error) {
	if t, ok := v.starts[sessionID]; ok {
		return t, nil
	}
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			v.starts[sessionID] = nil
			return nil, nil
		}
		return nil, err
	}
	v.starts[sessionID] = sess.ScheduledStart
	return sess.ScheduledStart, nil
}
