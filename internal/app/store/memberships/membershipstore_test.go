package membershipstore_test

import (
	"errors"
	"testing"

	membershipstore "github.com/sharehub/sharehub/internal/app/store/memberships"
	"github.com/sharehub/sharehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Add(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "member@example.com", "Member")
	g := fx.CreateGroup(ctx, "Engineering")

	m, err := store.Add(ctx, g.ID, u.ID)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.UserID != u.ID || m.GroupID != g.ID {
		t.Error("membership edge has wrong endpoints")
	}
	if m.JoinedAt.IsZero() {
		t.Error("expected JoinedAt to be set")
	}
}

func TestStore_Add_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "member@example.com", "Member")
	g := fx.CreateGroup(ctx, "Engineering")

	if _, err := store.Add(ctx, g.ID, u.ID); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	_, err := store.Add(ctx, g.ID, u.ID)
	if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		t.Errorf("expected ErrDuplicateMembership, got %v", err)
	}
}

func TestStore_Add_MissingSides(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "member@example.com", "Member")
	g := fx.CreateGroup(ctx, "Engineering")

	if _, err := store.Add(ctx, primitive.NewObjectID(), u.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for missing group, got %v", err)
	}
	if _, err := store.Add(ctx, g.ID, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for missing user, got %v", err)
	}
}

func TestStore_Remove_AbsentIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Remove(ctx, primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
		t.Errorf("expected removing an absent membership to succeed, got %v", err)
	}
}

func TestStore_ListByUserAndGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u1 := fx.CreateUser(ctx, "one@example.com", "One")
	u2 := fx.CreateUser(ctx, "two@example.com", "Two")
	g1 := fx.CreateGroup(ctx, "Engineering")
	g2 := fx.CreateGroup(ctx, "Sales")

	for _, pair := range []struct{ g, u primitive.ObjectID }{
		{g1.ID, u1.ID}, {g1.ID, u2.ID}, {g2.ID, u1.ID},
	} {
		if _, err := store.Add(ctx, pair.g, pair.u); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	byUser, err := store.ListByUser(ctx, u1.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("expected 2 memberships for user, got %d", len(byUser))
	}

	byGroup, err := store.ListByGroup(ctx, g1.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(byGroup) != 2 {
		t.Errorf("expected 2 memberships for group, got %d", len(byGroup))
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 membership edges, got %d", len(all))
	}
}
