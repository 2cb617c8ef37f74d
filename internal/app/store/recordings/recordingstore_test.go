package recordingstore_test

import (
	"testing"

	recordingstore "github.com/openjam/jamcore/internal/app/store/recordings"
	sharetokenstore "github.com/openjam/jamcore/internal/app/store/sharetokens"
	"github.com/openjam/jamcore/internal/domain/models"
	"github.com/openjam/jamcore/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStart_OneInProgressPerSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := recordingstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})

	rec, err := store.Start(ctx, active.ID, host.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if rec.StartedAt == nil {
		t.Error("expected started_at to be set")
	}

	if _, err := store.Start(ctx, active.ID, host.ID); err != recordingstore.ErrAlreadyRecording {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}

	// A different session records independently.
	other := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})
	if _, err := store.Start(ctx, other.ID, host.ID); err != nil {
		t.Fatalf("Start on a different session failed: %v", err)
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := recordingstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})

	rec, err := store.Start(ctx, active.ID, host.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	stopped, err := store.Stop(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if stopped.StoppedAt == nil {
		t.Fatal("expected stopped_at to be set")
	}

	again, err := store.Stop(ctx, rec.ID)
	if err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
	if !again.StoppedAt.Equal(*stopped.StoppedAt) {
		t.Error("expected the first stop time to be kept")
	}

	// A new recording may start once the old one stopped.
	if _, err := store.Start(ctx, active.ID, host.ID); err != nil {
		t.Fatalf("Start after Stop failed: %v", err)
	}
}

func TestInProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := recordingstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})

	got, err := store.InProgress(ctx, active.ID)
	if err != nil {
		t.Fatalf("InProgress failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected no recording in progress")
	}

	rec, err := store.Start(ctx, active.ID, host.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	got, err = store.InProgress(ctx, active.ID)
	if err != nil {
		t.Fatalf("InProgress failed: %v", err)
	}
	if got == nil || got.ID != rec.ID {
		t.Fatal("expected the started recording to be in progress")
	}

	if _, err := store.Stop(ctx, rec.ID); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	got, err = store.InProgress(ctx, active.ID)
	if err != nil {
		t.Fatalf("InProgress failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected no recording in progress after stop")
	}
}

func TestClaim_RequiresStoppedRecording(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := recordingstore.New(db)
	host := testutil.CreateUser(t, ctx, db, "Host")
	active := testutil.CreateActiveSession(t, ctx, db, models.ActiveSession{CreatorID: host.ID})

	rec, err := store.Start(ctx, active.ID, host.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := store.Claim(ctx, rec.ID, host.ID, "take one", "", "jazz", true); err != recordingstore.ErrNotStopped {
		t.Fatalf("expected ErrNotStopped, got %v", err)
	}

	if _, err := store.Stop(ctx, rec.ID); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	cr, err := store.Claim(ctx, rec.ID, host.ID, "take one", "rough mix", "jazz", true)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if cr.RecordingID != rec.ID || cr.OwnerID != host.ID {
		t.Error("claimed recording does not reference the source recording and owner")
	}
	if cr.ShareTokenID == nil {
		t.Fatal("expected a share token to be minted with the claim")
	}

	tok, err := sharetokenstore.New(db).GetByShareable(ctx, cr.ID)
	if err != nil {
		t.Fatalf("share token lookup failed: %v", err)
	}
	if tok.ShareableType != models.ShareableRecording {
		t.Errorf("expected shareable type %q, got %q", models.ShareableRecording, tok.ShareableType)
	}
}

func TestClaim_RejectsUnknownGenre(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := recordingstore.New(db)
	_, err := store.Claim(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "x", "", "not-a-genre", false)
	if err != recordingstore.ErrUnknownGenre {
		t.Fatalf("expected ErrUnknownGenre, got %v", err)
	}
}
