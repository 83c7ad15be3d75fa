package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/sharehub/sharehub/internal/app/store/groups"
	"github.com/sharehub/sharehub/internal/domain/models"
	"github.com/sharehub/sharehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "Engineering", Description: "Builds things"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Group{Name: "Engineering"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Group{Name: "ENGINEERING"})
	if !errors.Is(err, groupstore.ErrDuplicateGroupName) {
		t.Errorf("expected ErrDuplicateGroupName, got %v", err)
	}
}

func TestStore_UpdateInfo_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.UpdateInfo(ctx, primitive.NewObjectID(), "New Name", "")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Delete_CascadesEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Doomed")
	u := fx.CreateUser(ctx, "member@example.com", "Member")
	fx.CreateMembership(ctx, u.ID, g.ID)

	r := fx.CreateResource(ctx, u.ID, "Doc")
	fx.CreateGrant(ctx, r.ID, models.ShareTypeGroup, g.ID.Hex(), u.ID)

	n, err := store.Delete(ctx, g.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 group deleted, got %d", n)
	}
	if cnt, _ := db.Collection("group_memberships").CountDocuments(ctx, bson.M{"group_id": g.ID}); cnt != 0 {
		t.Errorf("expected memberships cascaded, %d remain", cnt)
	}
	if cnt, _ := db.Collection("share_grants").CountDocuments(ctx, bson.M{"target_id": g.ID.Hex()}); cnt != 0 {
		t.Errorf("expected group grants cascaded, %d remain", cnt)
	}
}
