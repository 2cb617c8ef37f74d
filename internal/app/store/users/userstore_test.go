package userstore_test

import (
	"testing"

	userstore "github.com/openjam/jamcore/internal/app/store/users"
	"github.com/openjam/jamcore/internal/app/system/indexes"
	"github.com/openjam/jamcore/internal/domain/models"
	"github.com/openjam/jamcore/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_FoldsName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	u, err := store.Create(ctx, models.User{Name: "Björk Guðmundsdóttir", Email: "bjork@test.local"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.NameCI != "bjork gudmundsdottir" {
		t.Errorf("expected folded name, got %q", u.NameCI)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "bjork@test.local" {
		t.Errorf("unexpected email %q", got.Email)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Duplicate detection relies on the unique email index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := userstore.New(db)
	if _, err := store.Create(ctx, models.User{Name: "A", Email: "same@test.local"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Name: "B", Email: "same@test.local"})
	if err != userstore.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestGetByIDs_SkipsMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	a := testutil.CreateUser(t, ctx, db, "A")
	b := testutil.CreateUser(t, ctx, db, "B")
	missing := primitive.NewObjectID()

	got, err := store.GetByIDs(ctx, []primitive.ObjectID{a.ID, b.ID, missing})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
	if _, ok := got[missing]; ok {
		t.Error("missing ids must be absent from the result")
	}
}

func TestUpdateNetworkState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	u := testutil.CreateUser(t, ctx, db, "A")

	loc := int64(77)
	addr := int64(88)
	if err := store.UpdateNetworkState(ctx, u.ID, &loc, &addr, 42); err != nil {
		t.Fatalf("UpdateNetworkState failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LastAudioLatency != 42 {
		t.Errorf("expected latency 42, got %d", got.LastAudioLatency)
	}
	if got.LastLocidispid == nil || *got.LastLocidispid != 77 {
		t.Error("expected last_locidispid 77")
	}
	if got.LastAddr == nil || *got.LastAddr != 88 {
		t.Error("expected last_addr 88")
	}

	// A nil locator keeps the previous one.
	if err := store.UpdateNetworkState(ctx, u.ID, nil, nil, 50); err != nil {
		t.Fatalf("UpdateNetworkState failed: %v", err)
	}
	got, err = store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LastLocidispid == nil || *got.LastLocidispid != 77 {
		t.Error("expected the previous locator to be kept")
	}
	if got.LastAudioLatency != 50 {
		t.Errorf("expected latency 50, got %d", got.LastAudioLatency)
	}
}
