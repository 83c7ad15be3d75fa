package engine_test

import (
	"context"
	"testing"

	"github.com/sharehub/sharehub/internal/app/engine"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResourcesWithUserCount(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	u2 := addUser(ms, "u2")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	ms.AddMembership(u1.ID, g1.ID)
	ms.AddMembership(u2.ID, g1.ID)

	shared := addResource(ms, owner.ID, "shared")   // direct u1 + group g1 -> {u1, u2}
	global := addResource(ms, owner.ID, "global")   // global -> all 3 users
	private := addResource(ms, owner.ID, "private") // no grants -> 0

	share(t, e, shared.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, shared.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, global.ID, models.ShareTypeGlobal, "", owner.ID)

	rows, err := e.ResourcesWithUserCount(ctx)
	if err != nil {
		t.Fatalf("ResourcesWithUserCount: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}

	byID := make(map[primitive.ObjectID]engine.ResourceUserCount)
	for _, row := range rows {
		byID[row.Resource.ID] = row
	}

	if row := byID[shared.ID]; row.UserCount != 2 || row.AccessType != engine.AccessListSpecific {
		t.Errorf("shared: got count=%d type=%q, want 2/specific", row.UserCount, row.AccessType)
	}
	if row := byID[global.ID]; row.UserCount != 3 || row.AccessType != engine.AccessListGlobal {
		t.Errorf("global: got count=%d type=%q, want 3/global", row.UserCount, row.AccessType)
	}
	if row := byID[private.ID]; row.UserCount != 0 || row.AccessType != engine.AccessListSpecific {
		t.Errorf("private: got count=%d type=%q, want 0/specific", row.UserCount, row.AccessType)
	}
}

func TestUsersWithResourceCount(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	u2 := addUser(ms, "u2")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	ms.AddMembership(u1.ID, g1.ID)

	r1 := addResource(ms, owner.ID, "r1")
	r2 := addResource(ms, owner.ID, "r2")
	r3 := addResource(ms, owner.ID, "r3")

	// u1: r1 direct, r1+r2 via g1, r3 global -> 3 distinct.
	// u2: r3 global only -> 1.
	share(t, e, r1.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, r1.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, r2.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, r3.ID, models.ShareTypeGlobal, "", owner.ID)

	rows, err := e.UsersWithResourceCount(ctx)
	if err != nil {
		t.Fatalf("UsersWithResourceCount: %v", err)
	}

	byID := make(map[primitive.ObjectID]int)
	for _, row := range rows {
		byID[row.User.ID] = row.ResourceCount
	}
	if byID[u1.ID] != 3 {
		t.Errorf("u1 count: got %d, want 3", byID[u1.ID])
	}
	if byID[u2.ID] != 1 {
		t.Errorf("u2 count: got %d, want 1", byID[u2.ID])
	}
	if byID[owner.ID] != 1 {
		t.Errorf("owner count: got %d, want 1 (global only)", byID[owner.ID])
	}
}

// The reports must agree with per-entity resolution.
func TestAggregatorMatchesResolvers(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	u2 := addUser(ms, "u2")
	u3 := addUser(ms, "u3")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	g2 := ms.AddGroup(models.Group{Name: "g2"})
	ms.AddMembership(u1.ID, g1.ID)
	ms.AddMembership(u2.ID, g1.ID)
	ms.AddMembership(u2.ID, g2.ID)
	ms.AddMembership(u3.ID, g2.ID)

	r1 := addResource(ms, owner.ID, "r1")
	r2 := addResource(ms, owner.ID, "r2")
	r3 := addResource(ms, owner.ID, "r3")

	share(t, e, r1.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, r1.ID, models.ShareTypeUser, u3.ID.Hex(), owner.ID)
	share(t, e, r2.ID, models.ShareTypeGroup, g2.ID.Hex(), owner.ID)
	share(t, e, r3.ID, models.ShareTypeGlobal, "", owner.ID)

	resourceRows, err := e.ResourcesWithUserCount(ctx)
	if err != nil {
		t.Fatalf("ResourcesWithUserCount: %v", err)
	}
	for _, row := range resourceRows {
		list, err := e.ResolveResourceAccess(ctx, row.Resource.ID)
		if err != nil {
			t.Fatalf("ResolveResourceAccess(%s): %v", row.Resource.Name, err)
		}
		if row.UserCount != list.TotalUsers {
			t.Errorf("resource %s: report count %d != resolver count %d",
				row.Resource.Name, row.UserCount, list.TotalUsers)
		}
		if row.AccessType != list.AccessType {
			t.Errorf("resource %s: report type %q != resolver type %q",
				row.Resource.Name, row.AccessType, list.AccessType)
		}
	}

	userRows, err := e.UsersWithResourceCount(ctx)
	if err != nil {
		t.Fatalf("UsersWithResourceCount: %v", err)
	}
	for _, row := range userRows {
		list, err := e.ResolveUserResources(ctx, row.User.ID)
		if err != nil {
			t.Fatalf("ResolveUserResources(%s): %v", row.User.FullName, err)
		}
		if row.ResourceCount != list.TotalResources {
			t.Errorf("user %s: report count %d != resolver count %d",
				row.User.FullName, row.ResourceCount, list.TotalResources)
		}
	}
}
