package connectionstore_test

import (
	"testing"

	connectionstore "github.com/openjam/jamcore/internal/app/store/connections"
	userstore "github.com/openjam/jamcore/internal/app/store/users"
	"github.com/openjam/jamcore/internal/domain/models"
	"github.com/openjam/jamcore/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func boolPtr(b bool) *bool { return &b }

func TestCreate_GeneratesClientID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	user := testutil.CreateUser(t, ctx, db, "Ana")

	conn, err := store.Create(ctx, models.Connection{UserID: user.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if conn.ClientID == "" {
		t.Error("expected a generated client id")
	}

	got, err := store.GetByClientID(ctx, conn.ClientID)
	if err != nil {
		t.Fatalf("GetByClientID failed: %v", err)
	}
	if got.ID != conn.ID {
		t.Error("lookup by client id returned a different connection")
	}
}

func TestJoin_AttachesAndRefreshesLatency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	joiner := testutil.CreateUser(t, ctx, db, "Joiner")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{
		CreatorID:      host.ID,
		MusicianAccess: true,
	})
	conn := testutil.CreateConnection(t, ctx, db, joiner.ID, 0)

	if err := store.Join(ctx, conn.ID, active.ID, true, 42); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	got, err := store.GetByID(ctx, conn.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ActiveSessionID == nil || *got.ActiveSessionID != active.ID {
		t.Error("expected the connection to be attached to the session")
	}
	if !got.AsMusician {
		t.Error("expected as_musician to be set")
	}
	if got.AudioLatency != 42 {
		t.Errorf("expected audio latency 42, got %d", got.AudioLatency)
	}

	u, err := userstore.New(db).GetByID(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if u.LastAudioLatency != 42 {
		t.Errorf("expected user's last audio latency 42, got %d", u.LastAudioLatency)
	}
}

func TestJoin_ApprovalRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	stranger := testutil.CreateUser(t, ctx, db, "Stranger")
	invitee := testutil.CreateUser(t, ctx, db, "Invitee")

	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{
		CreatorID:        host.ID,
		MusicianAccess:   true,
		ApprovalRequired: true,
	})

	strangerConn := testutil.CreateConnection(t, ctx, db, stranger.ID, 10)
	if err := store.Join(ctx, strangerConn.ID, active.ID, true, 10); err != connectionstore.ErrApprovalRequired {
		t.Fatalf("expected ErrApprovalRequired for a stranger, got %v", err)
	}

	// An invitation from the creator grants standing.
	testutil.CreateInvitation(t, ctx, db, host.ID, invitee.ID, active.SessionID)
	inviteeConn := testutil.CreateConnection(t, ctx, db, invitee.ID, 10)
	if err := store.Join(ctx, inviteeConn.ID, active.ID, true, 10); err != nil {
		t.Fatalf("expected invitee to join, got %v", err)
	}

	// The creator always has standing.
	hostConn := testutil.CreateConnection(t, ctx, db, host.ID, 5)
	if err := store.Join(ctx, hostConn.ID, active.ID, true, 5); err != nil {
		t.Fatalf("expected creator to join, got %v", err)
	}
}

func TestLeave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})
	conn := testutil.JoinConnection(t, ctx, db, host.ID, active.ID, true, 5)

	if err := store.Leave(ctx, conn.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	got, err := store.GetByID(ctx, conn.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ActiveSessionID != nil {
		t.Error("expected the connection to be detached")
	}
}

func TestClientIDs_JoinOrderAndFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	fan := testutil.CreateUser(t, ctx, db, "Fan")
	late := testutil.CreateUser(t, ctx, db, "Late")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})

	first := testutil.JoinConnection(t, ctx, db, host.ID, active.ID, true, 5)
	second := testutil.JoinConnection(t, ctx, db, fan.ID, active.ID, false, 20)
	third := testutil.JoinConnection(t, ctx, db, late.ID, active.ID, true, 8)

	all, err := store.ClientIDs(ctx, active.ID, connectionstore.Filter{})
	if err != nil {
		t.Fatalf("ClientIDs failed: %v", err)
	}
	want := []string{first.ClientID, second.ClientID, third.ClientID}
	if len(all) != len(want) {
		t.Fatalf("expected %d client ids, got %d", len(want), len(all))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("expected join order %v, got %v", want, all)
		}
	}

	musicians, err := store.ClientIDs(ctx, active.ID, connectionstore.Filter{AsMusician: boolPtr(true)})
	if err != nil {
		t.Fatalf("ClientIDs failed: %v", err)
	}
	if len(musicians) != 2 || musicians[0] != first.ClientID || musicians[1] != third.ClientID {
		t.Errorf("expected the two musicians in join order, got %v", musicians)
	}

	// Filters compose with AND semantics.
	others, err := store.ClientIDs(ctx, active.ID, connectionstore.Filter{
		AsMusician:      boolPtr(true),
		ExcludeClientID: first.ClientID,
	})
	if err != nil {
		t.Fatalf("ClientIDs failed: %v", err)
	}
	if len(others) != 1 || others[0] != third.ClientID {
		t.Errorf("expected only the third musician, got %v", others)
	}
}

func TestClientIDs_MissingSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	_, err := store.ClientIDs(ctx, primitive.NewObjectID(), connectionstore.Filter{})
	if err != mongo.ErrNoDocuments {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestClientIDs_EmptySession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})

	ids, err := store.ClientIDs(ctx, active.ID, connectionstore.Filter{})
	if err != nil {
		t.Fatalf("ClientIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no client ids, got %v", ids)
	}
}

func TestForSessions_GroupsBySession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := connectionstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	other := testutil.CreateUser(t, ctx, db, "Other")
	a := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})
	b := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: other.ID})

	testutil.JoinConnection(t, ctx, db, host.ID, a.ID, true, 5)
	testutil.JoinConnection(t, ctx, db, other.ID, b.ID, true, 5)
	testutil.JoinConnection(t, ctx, db, host.ID, b.ID, false, 5)

	got, err := store.ForSessions(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("ForSessions failed: %v", err)
	}
	if len(got[a.ID]) != 1 {
		t.Errorf("expected 1 connection in session a, got %d", len(got[a.ID]))
	}
	if len(got[b.ID]) != 2 {
		t.Errorf("expected 2 connections in session b, got %d", len(got[b.ID]))
	}
}
