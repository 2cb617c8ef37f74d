package sessionpolicy_test

import (
	"testing"

	"github.com/openjam/jamcore/internal/app/policy/sessionpolicy"
	"github.com/openjam/jamcore/internal/domain/models"
	"github.com/openjam/jamcore/internal/testutil"
)

func TestAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	host := testutil.CreateUser(t, ctx, db, "Host")
	member := testutil.CreateUser(t, ctx, db, "Member")
	outsider := testutil.CreateUser(t, ctx, db, "Outsider")

	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})
	testutil.JoinConnection(t, ctx, db, member.ID, active.ID, true, 10)

	for _, tt := range []struct {
		name   string
		viewer models.User
		want   bool
	}{
		{"creator", host, true},
		{"connected member", member, true},
		{"outsider", outsider, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sessionpolicy.Access(ctx, db, tt.viewer.ID, active)
			if err != nil {
				t.Fatalf("Access failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Access = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	host := testutil.CreateUser(t, ctx, db, "Host")
	invitee := testutil.CreateUser(t, ctx, db, "Invitee")
	wrongSender := testutil.CreateUser(t, ctx, db, "WrongSender")

	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})
	otherSession := testutil.CreateSession(t, ctx, db, "other", nil)

	// Invitation from the creator for the right parent session counts.
	testutil.CreateInvitation(t, ctx, db, host.ID, invitee.ID, active.SessionID)
	got, err := sessionpolicy.Invited(ctx, db, invitee.ID, active)
	if err != nil {
		t.Fatalf("Invited failed: %v", err)
	}
	if !got {
		t.Error("expected the creator's invitation to count")
	}

	// An invitation from someone other than the creator does not.
	stranger := testutil.CreateUser(t, ctx, db, "Stranger")
	testutil.CreateInvitation(t, ctx, db, wrongSender.ID, stranger.ID, active.SessionID)
	got, err = sessionpolicy.Invited(ctx, db, stranger.ID, active)
	if err != nil {
		t.Fatalf("Invited failed: %v", err)
	}
	if got {
		t.Error("an invitation not from the creator must not count")
	}

	// An invitation for a different session does not.
	other := testutil.CreateUser(t, ctx, db, "Other")
	testutil.CreateInvitation(t, ctx, db, host.ID, other.ID, otherSession.ID)
	got, err = sessionpolicy.Invited(ctx, db, other.ID, active)
	if err != nil {
		t.Fatalf("Invited failed: %v", err)
	}
	if got {
		t.Error("an invitation for another session must not count")
	}
}

func TestCanSee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	host := testutil.CreateUser(t, ctx, db, "Host")
	member := testutil.CreateUser(t, ctx, db, "Member")
	invitee := testutil.CreateUser(t, ctx, db, "Invitee")
	outsider := testutil.CreateUser(t, ctx, db, "Outsider")

	open := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{
		CreatorID: host.ID,
		FanAccess: true,
	})
	closed := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{
		CreatorID: host.ID,
		FanAccess: false,
	})
	testutil.JoinConnection(t, ctx, db, member.ID, closed.ID, true, 10)
	testutil.CreateInvitation(t, ctx, db, host.ID, invitee.ID, closed.SessionID)

	for _, tt := range []struct {
		name    string
		viewer  models.User
		session models.ActiveSession
		want    bool
	}{
		{"anyone sees fan-access session", outsider, open, true},
		{"creator sees closed session", host, closed, true},
		{"member sees closed session", member, closed, true},
		{"invitee sees closed session", invitee, closed, true},
		{"outsider cannot see closed session", outsider, closed, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sessionpolicy.CanSee(ctx, db, tt.viewer.ID, tt.session)
			if err != nil {
				t.Fatalf("CanSee failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanSee = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanJoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	host := testutil.CreateUser(t, ctx, db, "Host")
	invitee := testutil.CreateUser(t, ctx, db, "Invitee")
	outsider := testutil.CreateUser(t, ctx, db, "Outsider")

	open := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{
		CreatorID:      host.ID,
		MusicianAccess: true,
	})
	closed := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{
		CreatorID:      host.ID,
		MusicianAccess: false,
	})
	testutil.CreateInvitation(t, ctx, db, host.ID, invitee.ID, closed.SessionID)

	for _, tt := range []struct {
		name    string
		viewer  models.User
		session models.ActiveSession
		want    bool
	}{
		{"anyone joins open session", outsider, open, true},
		{"creator joins closed session", host, closed, true},
		{"invitee joins closed session", invitee, closed, true},
		{"outsider cannot join closed session", outsider, closed, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sessionpolicy.CanJoin(ctx, db, tt.viewer.ID, tt.session, true)
			if err != nil {
				t.Fatalf("CanJoin failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanJoin = %v, want %v", got, tt.want)
			}
		})
	}
}
