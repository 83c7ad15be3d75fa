package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sharehub/sharehub/internal/app/engine"
	"github.com/sharehub/sharehub/internal/app/store/memstore"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestEngine() (*engine.Engine, *memstore.Store) {
	ms := memstore.New()
	return engine.New(ms, zap.NewNop(), 4), ms
}

func addUser(ms *memstore.Store, name string) models.User {
	return ms.AddUser(models.User{Email: name + "@example.com", FullName: name})
}

func addResource(ms *memstore.Store, owner primitive.ObjectID, name string) models.Resource {
	return ms.AddResource(models.Resource{OwnerID: owner, Type: "document", Name: name})
}

func share(t *testing.T, e *engine.Engine, res primitive.ObjectID, st models.ShareType, target string, by primitive.ObjectID) *models.ShareGrant {
	t.Helper()
	g, err := e.ShareResource(context.Background(), res, st, target, by, nil)
	if err != nil {
		t.Fatalf("ShareResource(%s, %s): %v", st, target, err)
	}
	return g
}

func TestResolveResourceAccess_NotFound(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.ResolveResourceAccess(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveResourceAccess_GroupExpansion(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	u2 := addUser(ms, "u2")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	ms.AddMembership(u1.ID, g1.ID)
	ms.AddMembership(u2.ID, g1.ID)
	r1 := addResource(ms, owner.ID, "r1")

	share(t, e, r1.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)

	list, err := e.ResolveResourceAccess(ctx, r1.ID)
	if err != nil {
		t.Fatalf("ResolveResourceAccess: %v", err)
	}
	if list.AccessType != engine.AccessListSpecific {
		t.Errorf("AccessType: got %q, want %q", list.AccessType, engine.AccessListSpecific)
	}
	if list.TotalUsers != 2 {
		t.Fatalf("TotalUsers: got %d, want 2", list.TotalUsers)
	}
	for i, want := range []primitive.ObjectID{u1.ID, u2.ID} {
		entry := list.Entries[i]
		if entry.UserID != want {
			t.Errorf("entry %d: got user %s, want %s", i, entry.UserID.Hex(), want.Hex())
		}
		if entry.AccessType != engine.AccessGroup {
			t.Errorf("entry %d: got access type %q, want %q", i, entry.AccessType, engine.AccessGroup)
		}
		if entry.GroupID == nil || *entry.GroupID != g1.ID {
			t.Errorf("entry %d: missing or wrong group id", i)
		}
	}
}

func TestResolveResourceAccess_GlobalOverride(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	for i := 0; i < 4; i++ {
		addUser(ms, string(rune('a'+i)))
	}
	r3 := addResource(ms, owner.ID, "r3")

	// Specific grants must be irrelevant once a global grant exists.
	share(t, e, r3.ID, models.ShareTypeUser, owner.ID.Hex(), owner.ID)
	share(t, e, r3.ID, models.ShareTypeGlobal, "", owner.ID)

	list, err := e.ResolveResourceAccess(ctx, r3.ID)
	if err != nil {
		t.Fatalf("ResolveResourceAccess: %v", err)
	}
	if list.AccessType != engine.AccessListGlobal {
		t.Errorf("AccessType: got %q, want %q", list.AccessType, engine.AccessListGlobal)
	}
	if list.TotalUsers != 5 {
		t.Errorf("TotalUsers: got %d, want 5", list.TotalUsers)
	}
	for _, entry := range list.Entries {
		if entry.AccessType != engine.AccessGlobal {
			t.Errorf("entry access type: got %q, want %q", entry.AccessType, engine.AccessGlobal)
		}
		if entry.SharedBy != nil || entry.SharedAt != nil {
			t.Error("global entries must carry no per-user provenance")
		}
	}
}

func TestResolveResourceAccess_DirectBeforeGroup(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u5 := addUser(ms, "u5")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	ms.AddMembership(u5.ID, g1.ID)
	r1 := addResource(ms, owner.ID, "r1")

	share(t, e, r1.ID, models.ShareTypeUser, u5.ID.Hex(), owner.ID)
	share(t, e, r1.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)

	list, err := e.ResolveResourceAccess(ctx, r1.ID)
	if err != nil {
		t.Fatalf("ResolveResourceAccess: %v", err)
	}
	if list.TotalUsers != 1 {
		t.Fatalf("TotalUsers: got %d, want 1", list.TotalUsers)
	}

	count := 0
	for _, entry := range list.Entries {
		if entry.UserID == u5.ID {
			count++
			if entry.AccessType != engine.AccessDirect {
				t.Errorf("access type: got %q, want %q (direct wins)", entry.AccessType, engine.AccessDirect)
			}
		}
	}
	if count != 1 {
		t.Errorf("u5 appears %d times, want exactly once", count)
	}
}

func TestResolveResourceAccess_CountIsUnion(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	u2 := addUser(ms, "u2")
	u3 := addUser(ms, "u3")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	g2 := ms.AddGroup(models.Group{Name: "g2"})
	// g1 = {u1, u2}, g2 = {u2, u3}; direct grants to u1 and u3.
	ms.AddMembership(u1.ID, g1.ID)
	ms.AddMembership(u2.ID, g1.ID)
	ms.AddMembership(u2.ID, g2.ID)
	ms.AddMembership(u3.ID, g2.ID)
	r := addResource(ms, owner.ID, "r")

	share(t, e, r.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeUser, u3.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeGroup, g2.ID.Hex(), owner.ID)

	list, err := e.ResolveResourceAccess(ctx, r.ID)
	if err != nil {
		t.Fatalf("ResolveResourceAccess: %v", err)
	}
	// Union is {u1, u2, u3}, never 2 direct + 2 + 2 group.
	if list.TotalUsers != 3 {
		t.Errorf("TotalUsers: got %d, want 3", list.TotalUsers)
	}
	if len(list.Entries) != 3 {
		t.Errorf("entries: got %d, want 3", len(list.Entries))
	}
}

func TestResolveResourceAccess_SkipsDanglingTargets(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	ghost := addUser(ms, "ghost")
	deadGroup := ms.AddGroup(models.Group{Name: "dead"})
	r := addResource(ms, owner.ID, "r")

	share(t, e, r.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeUser, ghost.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeGroup, deadGroup.ID.Hex(), owner.ID)

	// Delete the grant targets out from under the grants.
	ms.RemoveUser(ghost.ID)
	ms.RemoveGroup(deadGroup.ID)

	list, err := e.ResolveResourceAccess(ctx, r.ID)
	if err != nil {
		t.Fatalf("dangling grants must not fail resolution: %v", err)
	}
	if list.TotalUsers != 1 {
		t.Errorf("TotalUsers: got %d, want 1", list.TotalUsers)
	}
	if len(list.Entries) != 1 || list.Entries[0].UserID != u1.ID {
		t.Errorf("expected only u1 in entries, got %+v", list.Entries)
	}
}

func TestResolveUserResources_NotFound(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.ResolveUserResources(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveUserResources_MergesAllPaths(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u4 := addUser(ms, "u4")
	g2 := ms.AddGroup(models.Group{Name: "g2"})
	g3 := ms.AddGroup(models.Group{Name: "g3"})
	ms.AddMembership(u4.ID, g2.ID)
	ms.AddMembership(u4.ID, g3.ID)
	r2 := addResource(ms, owner.ID, "r2")
	r3 := addResource(ms, owner.ID, "r3")

	share(t, e, r2.ID, models.ShareTypeGroup, g2.ID.Hex(), owner.ID)
	share(t, e, r3.ID, models.ShareTypeGlobal, "", owner.ID)

	list, err := e.ResolveUserResources(ctx, u4.ID)
	if err != nil {
		t.Fatalf("ResolveUserResources: %v", err)
	}
	if list.TotalResources != 2 {
		t.Fatalf("TotalResources: got %d, want 2", list.TotalResources)
	}

	if list.Resources[0].Resource.ID != r2.ID || list.Resources[0].AccessType != engine.AccessGroup {
		t.Errorf("first entry: got %s/%s, want r2 via group",
			list.Resources[0].Resource.ID.Hex(), list.Resources[0].AccessType)
	}
	if list.Resources[0].GroupID == nil || *list.Resources[0].GroupID != g2.ID {
		t.Error("group entry must carry the granting group id")
	}

	global := list.Resources[1]
	if global.Resource.ID != r3.ID || global.AccessType != engine.AccessGlobal {
		t.Errorf("second entry: got %s/%s, want r3 via global",
			global.Resource.ID.Hex(), global.AccessType)
	}
	if global.SharedBy != nil || global.SharedAt != nil {
		t.Error("global entries must carry no sharing provenance")
	}
	if len(global.Permissions) != 1 || global.Permissions[0] != "read" {
		t.Errorf("global permissions: got %v, want [read]", global.Permissions)
	}
}

func TestResolveUserResources_DirectWinsOverGroupAndGlobal(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	ms.AddMembership(u1.ID, g1.ID)
	r := addResource(ms, owner.ID, "r")

	share(t, e, r.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, r.ID, models.ShareTypeGlobal, "", owner.ID)

	list, err := e.ResolveUserResources(ctx, u1.ID)
	if err != nil {
		t.Fatalf("ResolveUserResources: %v", err)
	}
	if list.TotalResources != 1 {
		t.Fatalf("TotalResources: got %d, want 1", list.TotalResources)
	}
	if list.Resources[0].AccessType != engine.AccessDirect {
		t.Errorf("access type: got %q, want %q", list.Resources[0].AccessType, engine.AccessDirect)
	}
}

func TestResolveUserResources_SkipsDanglingResource(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	r1 := addResource(ms, owner.ID, "r1")
	r2 := addResource(ms, owner.ID, "r2")

	share(t, e, r1.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, r2.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	ms.RemoveResource(r2.ID)

	list, err := e.ResolveUserResources(ctx, u1.ID)
	if err != nil {
		t.Fatalf("dangling resource grant must not fail resolution: %v", err)
	}
	if list.TotalResources != 1 {
		t.Errorf("TotalResources: got %d, want 1", list.TotalResources)
	}
}

// Forward and reverse resolution must agree: u has access to r iff r is
// in u's resource list.
func TestResolutionSymmetry(t *testing.T) {
	e, ms := newTestEngine()
	ctx := context.Background()

	owner := addUser(ms, "owner")
	u1 := addUser(ms, "u1")
	u2 := addUser(ms, "u2")
	u3 := addUser(ms, "u3")
	g1 := ms.AddGroup(models.Group{Name: "g1"})
	ms.AddMembership(u1.ID, g1.ID)
	ms.AddMembership(u2.ID, g1.ID)

	r1 := addResource(ms, owner.ID, "r1")
	r2 := addResource(ms, owner.ID, "r2")
	r3 := addResource(ms, owner.ID, "r3")

	share(t, e, r1.ID, models.ShareTypeGroup, g1.ID.Hex(), owner.ID)
	share(t, e, r1.ID, models.ShareTypeUser, u3.ID.Hex(), owner.ID)
	share(t, e, r2.ID, models.ShareTypeUser, u1.ID.Hex(), owner.ID)
	share(t, e, r3.ID, models.ShareTypeGlobal, "", owner.ID)

	users := []models.User{owner, u1, u2, u3}
	resources := []models.Resource{r1, r2, r3}

	forward := make(map[primitive.ObjectID]map[primitive.ObjectID]bool)
	for _, r := range resources {
		list, err := e.ResolveResourceAccess(ctx, r.ID)
		if err != nil {
			t.Fatalf("ResolveResourceAccess(%s): %v", r.Name, err)
		}
		forward[r.ID] = make(map[primitive.ObjectID]bool)
		for _, entry := range list.Entries {
			forward[r.ID][entry.UserID] = true
		}
	}

	for _, u := range users {
		list, err := e.ResolveUserResources(ctx, u.ID)
		if err != nil {
			t.Fatalf("ResolveUserResources(%s): %v", u.FullName, err)
		}
		reverse := make(map[primitive.ObjectID]bool)
		for _, entry := range list.Resources {
			reverse[entry.Resource.ID] = true
		}
		for _, r := range resources {
			if forward[r.ID][u.ID] != reverse[r.ID] {
				t.Errorf("asymmetry for (user %s, resource %s): forward=%v reverse=%v",
					u.FullName, r.Name, forward[r.ID][u.ID], reverse[r.ID])
			}
		}
	}
}
