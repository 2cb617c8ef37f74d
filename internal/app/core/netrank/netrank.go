// Package netrank is the network-ranked discovery path: session search with
// keyword/genre/language/day filters, relevance tagging, and pairwise
// network-quality (latency) annotation between the searching connection and
// each session's members.
package netrank

import (
	"context"
	"sort"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	connectionstore "github.com/openjam/jamcore/internal/app/store/connections"
	friendshipstore "github.com/openjam/jamcore/internal/app/store/friendships"
	invitationstore "github.com/openjam/jamcore/internal/app/store/invitations"
	scorestore "github.com/openjam/jamcore/internal/app/store/scores"
	sessionstore "github.com/openjam/jamcore/internal/app/store/sessions"
	"github.com/openjam/jamcore/internal/app/system/localdate"
	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Relevance tags attached to each search result.
const (
	TagInvited = "invited"
	TagFriend  = "friend"
	TagNone    = "none"
)

// Order selects the result ordering strategy. Whether latency should drive
// the sort is genuinely ambiguous in the product, so it stays a caller
// choice rather than a hard-coded policy.
type Order int

const (
	// OrderDefault picks the operation's usual ordering: latency-ascending
	// for AMSIndex, recency for NIndex.
	OrderDefault Order = iota
	// OrderRecency sorts most recently created first.
	OrderRecency
	// OrderLatency sorts best (lowest) latency first, recency breaking ties
	// and sessions without latency data last.
	OrderLatency
)

// Options narrow an AMSIndex search. All filters are optional and compose
// with AND semantics. ClientID identifies the searching connection; it is
// needed for latency output, not for filtering.
type Options struct {
	Genre          string
	Lang           string
	Keyword        string
	Day            string // localdate.Layout; empty means no day filter
	TimezoneOffset int    // seconds east of UTC, used only with Day
	Offset         int
	Limit          int // 0 means no limit
	ClientID       string
	Order          Order
}

// Result is one ranked session.
type Result struct {
	Session models.ActiveSession
	// Tag classifies how the session relates to the viewer.
	Tag string
	// Latency is the best per-member combined latency estimate, or
	// NoLatency when no data was available.
	Latency int
}

// UserLatency is one row of the per-user report: a member of a matched
// session and the latency estimate toward them.
type UserLatency struct {
	UserID    primitive.ObjectID
	SessionID primitive.ObjectID
	Latency   int
}

// NoLatency marks a result with no usable latency data. Missing locators,
// scores, or connections degrade to this value; they never fail a search.
const NoLatency = -1

// Search runs the network-ranked discovery queries.
type Search struct {
	db          *mongo.Database
	sessions    *sessionstore.Store
	connections *connectionstore.Store
	friendships *friendshipstore.Store
	invitations *invitationstore.Store
	scores      *scorestore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Search {
	return &Search{
		db:          db,
		sessions:    sessionstore.New(db),
		connections: connectionstore.New(db),
		friendships: friendshipstore.New(db),
		invitations: invitationstore.New(db),
		scores:      scorestore.New(db),
		log:         logger,
	}
}

// NIndex returns the visible sessions the searching connection has any
// measured score against (via any member), most recent first. A connection
// with a nil locidispid simply has no measurements; that is not an error.
func (s *Search) NIndex(ctx context.Context, viewerID primitive.ObjectID, clientID string) ([]models.ActiveSession, error) {
	view, err := s.buildView(ctx, viewerID, clientID)
	if err != nil {
		return nil, err
	}

	var out []models.ActiveSession
	for _, c := range view.candidates {
		scored := false
		for _, m := range view.members[c.ID] {
			if _, ok := view.peerScores[m.ClientID]; ok {
				scored = true
				break
			}
		}
		if !scored {
			continue
		}
		if !view.canSee(c) {
			continue
		}
		out = append(out, c)
	}
	// candidates are already most recent first
	return out, nil
}

// AMSIndex runs the full search: filters, visibility, tag and latency
// annotation, ordering, then offset/limit pagination. It also returns the
// per-user latency report for the members of the matched sessions,
// deduplicated per (user, session).
func (s *Search) AMSIndex(ctx context.Context, viewerID primitive.ObjectID, opts Options) ([]Result, []UserLatency, error) {
	view, err := s.buildView(ctx, viewerID, opts.ClientID)
	if err != nil {
		return nil, nil, err
	}

	keyword := text.Fold(strings.TrimSpace(opts.Keyword))

	var results []Result
	var users []UserLatency
	seenUser := make(map[primitive.ObjectID]map[primitive.ObjectID]bool)

	for _, c := range view.candidates {
		if opts.Genre != "" && c.GenreID != opts.Genre {
			continue
		}
		if opts.Lang != "" && c.Language != opts.Lang {
			continue
		}
		if keyword != "" && !strings.Contains(c.DescriptionCI, keyword) {
			continue
		}
		if opts.Day != "" {
			start, err := view.scheduledStart(ctx, s, c.SessionID)
			if err != nil {
				return nil, nil, err
			}
			if start == nil || !localdate.Matches(*start, opts.Day, opts.TimezoneOffset) {
				continue
			}
		}
		if !view.canSee(c) {
			continue
		}

		best := NoLatency
		for _, m := range view.members[c.ID] {
			lat := view.memberLatency(m)
			if lat == NoLatency {
				continue
			}
			if best == NoLatency || lat < best {
				best = lat
			}
			if seenUser[m.UserID] == nil {
				seenUser[m.UserID] = make(map[primitive.ObjectID]bool)
			}
			if !seenUser[m.UserID][c.ID] {
				seenUser[m.UserID][c.ID] = true
				users = append(users, UserLatency{UserID: m.UserID, SessionID: c.ID, Latency: lat})
			}
		}

		results = append(results, Result{
			Session: c,
			Tag:     view.tag(c),
			Latency: best,
		})
	}

	order := opts.Order
	if order == OrderDefault {
		order = OrderLatency
	}
	if order == OrderLatency {
		sort.SliceStable(results, func(i, j int) bool {
			li, lj := results[i].Latency, results[j].Latency
			if li == NoLatency {
				return false
			}
			if lj == NoLatency {
				return true
			}
			return li < lj
		})
	}
	// OrderRecency keeps the candidate order (most recent first).

	results = paginate(results, opts.Offset, opts.Limit)
	return results, users, nil
}

// paginate applies offset/limit strictly after ordering. Limit only ever
// shrinks the result.
func paginate(results []Result, offset, limit int) []Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return nil
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}
