// Package directory builds the default "my feed" listing of live sessions
// for a viewer: every visible session, filtered by the caller's options and
// ordered by social relevance, then recency.
package directory

import (
	"context"
	"sort"

	bandstore "github.com/openjam/jamcore/internal/app/store/bands"
	broadcaststore "github.com/openjam/jamcore/internal/app/store/broadcast"
	connectionstore "github.com/openjam/jamcore/internal/app/store/connections"
	friendshipstore "github.com/openjam/jamcore/internal/app/store/friendships"
	invitationstore "github.com/openjam/jamcore/internal/app/store/invitations"
	sessionstore "github.com/openjam/jamcore/internal/app/store/sessions"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Options narrow the feed. All zero values mean "no restriction".
type Options struct {
	// Genres keeps only sessions whose genre id is in the set.
	Genres []string
	// FriendsOnly keeps only sessions with the viewer or one of the
	// viewer's friends among the members.
	FriendsOnly bool
	// MyBandsOnly keeps only sessions affiliated with one of the viewer's
	// bands.
	MyBandsOnly bool
	// AsMusician false is an explicit fan-listing request: only sessions
	// whose broadcast mount is provisioned are listed. Nil or true lists
	// for musicians.
	AsMusician *bool
}

// Directory lists sessions for viewers.
type Directory struct {
	db          *mongo.Database
	sessions    *sessionstore.Store
	connections *connectionstore.Store
	friendships *friendshipstore.Store
	invitations *invitationstore.Store
	bands       *bandstore.Store
	broadcast   *broadcaststore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Directory {
	return &Directory{
		db:          db,
		sessions:    sessionstore.New(db),
		connections: connectionstore.New(db),
		friendships: friendshipstore.New(db),
		invitations: invitationstore.New(db),
		bands:       bandstore.New(db),
		broadcast:   broadcaststore.New(db),
		log:         logger,
	}
}

// Relevance tiers. Lower sorts first.
const (
	tierInvited = iota
	tierFriend
	tierOther
)

// Index returns the live sessions visible to the viewer under opts, ordered
// by tier (invited, then friend-containing, then the rest) and most recent
// first within a tier.
//
// Sessions with zero connections are never listed. Such a session is a bug
// elsewhere in the system, but it keeps cropping up, so the feed guards
// against it rather than crashing or showing ghosts.
func (d *Directory) Index(ctx context.Context, viewerID primitive.ObjectID, opts Options) ([]models.ActiveSession, error) {
	candidates, err := d.sessions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, len(candidates))
	for i, a := range candidates {
		ids[i] = a.ID
	}
	members, err := d.connections.ForSessions(ctx, ids)
	if err != nil {
		return nil, err
	}
	friendSet, err := d.friendSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	invites, err := d.invitations.SessionIDsForReceiver(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	bandSet, err := d.bandSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	genreSet := make(map[string]bool, len(opts.Genres))
	for _, g := range opts.Genres {
		genreSet[g] = true
	}

	type ranked struct {
		session models.ActiveSession
		tier    int
	}
	var out []ranked

	for _, a := range candidates {
		conns := members[a.ID]
		if len(conns) == 0 {
			// A live session nobody is connected to is a leftover from a
			// crashed client; keep it out of the feed.
			d.log.Debug("skipping live session with no connections",
				zap.String("active_session_id", a.ID.Hex()))
			continue
		}

		invited := invites[a.SessionID][a.CreatorID]
		isMember := viewerID == a.CreatorID
		friendPresent := false
		for _, c := range conns {
			if c.UserID == viewerID {
				isMember = true
			}
			if friendSet[c.UserID] {
				friendPresent = true
			}
		}

		// Visibility: same outcome as sessionpolicy.CanSee, computed from
		// the preloaded membership and invitation data.
		if !a.FanAccess && !isMember && !invited {
			continue
		}
		// The musician feed only offers sessions the viewer could actually
		// join (sessionpolicy.CanJoin); a closed session with no standing
		// is noise. The fan feed filters on broadcast readiness instead.
		if opts.AsMusician == nil || *opts.AsMusician {
			if !a.MusicianAccess && !isMember && !invited {
				continue
			}
		}
		if len(genreSet) > 0 && !genreSet[a.GenreID] {
			continue
		}
		if opts.FriendsOnly && !friendPresent && !isMember {
			continue
		}
		if opts.MyBandsOnly && (a.BandID == nil || !bandSet[*a.BandID]) {
			continue
		}
		if opts.AsMusician != nil && !*opts.AsMusician {
			ready, err := d.broadcast.MountReady(ctx, a.MountID, a.CreatedAt)
			if err != nil {
				return nil, err
			}
			if !ready {
				continue
			}
		}

		tier := tierOther
		switch {
		case invited:
			tier = tierInvited
		case friendPresent:
			tier = tierFriend
		}
		out = append(out, ranked{session: a, tier: tier})
	}

	// Candidates arrive most recent first; a stable sort on tier keeps
	// recency order inside each tier.
	sort.SliceStable(out, func(i, j int) bool { return out[i].tier < out[j].tier })

	result := make([]models.ActiveSession, len(out))
	for i, r := range out {
		result[i] = r.session
	}
	return result, nil
}

func (d *Directory) friendSet(ctx context.Context, viewerID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	ids, err := d.friendships.FriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (d *Directory) bandSet(ctx context.Context, viewerID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	ids, err := d.bands.BandIDsForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
