package sharetokenstore_test

import (
	"testing"

	sharetokenstore "github.com/openjam/jamcore/internal/app/store/sharetokens"
	"github.com/openjam/jamcore/internal/domain/models"
	"github.com/openjam/jamcore/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMintAndResolve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := sharetokenstore.New(db)
	target := primitive.NewObjectID()

	tok, err := store.Mint(ctx, target, models.ShareableSession)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("expected a non-empty token value")
	}

	byEntity, err := store.GetByShareable(ctx, target)
	if err != nil {
		t.Fatalf("GetByShareable failed: %v", err)
	}
	if byEntity.Token != tok.Token {
		t.Error("entity lookup returned a different token")
	}

	byToken, err := store.GetByToken(ctx, tok.Token)
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if byToken.ShareableID != target || byToken.ShareableType != models.ShareableSession {
		t.Error("token did not resolve back to its entity")
	}

	// Tokens are unguessable; an unknown value resolves to nothing.
	if _, err := store.GetByToken(ctx, "not-a-token"); err != mongo.ErrNoDocuments {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
