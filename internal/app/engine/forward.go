// internal/app/engine/forward.go
package engine

import (
	"context"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ResolveResourceAccess returns every user with access to the resource
// and why. Returns ErrNotFound if the resource itself does not exist.
//
// When a global grant exists for the resource, the result covers all
// registered users and carries no per-user grant provenance. Otherwise
// user-type grants are applied first, then group-type grants, with a
// first-writer-wins seen set so a user reached through several paths
// appears exactly once, attributed to the earliest path.
func (e *Engine) ResolveResourceAccess(ctx context.Context, resourceID primitive.ObjectID) (*AccessList, error) {
	res, err := e.store.GetResource(ctx, resourceID)
	if err != nil {
		return nil, storeErr("get resource", err)
	}
	if res == nil {
		return nil, notFoundf("resource %s", resourceID.Hex())
	}

	grants, err := e.store.ListGrantsOfResource(ctx, resourceID)
	if err != nil {
		return nil, storeErr("list grants of resource", err)
	}

	for _, g := range grants {
		if g.ShareType == models.ShareTypeGlobal {
			return e.resolveGlobalAccess(ctx, resourceID)
		}
	}

	seen := make(map[primitive.ObjectID]struct{})
	entries := []AccessEntry{}

	// Direct grants first, in store order.
	for _, g := range grants {
		if g.ShareType != models.ShareTypeUser {
			continue
		}
		uid, err := primitive.ObjectIDFromHex(g.TargetID)
		if err != nil {
			e.log.Warn("skipping grant with malformed user target",
				zap.String("resource_id", resourceID.Hex()),
				zap.String("target_id", g.TargetID))
			continue
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		u, err := e.store.GetUser(ctx, uid)
		if err != nil {
			return nil, storeErr("get user", err)
		}
		if u == nil {
			// Grant outlived its user; stale, not an error.
			continue
		}
		seen[uid] = struct{}{}
		entries = append(entries, directEntry(g, uid))
	}

	// Then group grants, expanding each group's membership.
	for _, g := range grants {
		if g.ShareType != models.ShareTypeGroup {
			continue
		}
		gid, err := primitive.ObjectIDFromHex(g.TargetID)
		if err != nil {
			e.log.Warn("skipping grant with malformed group target",
				zap.String("resource_id", resourceID.Hex()),
				zap.String("target_id", g.TargetID))
			continue
		}
		grp, err := e.store.GetGroup(ctx, gid)
		if err != nil {
			return nil, storeErr("get group", err)
		}
		if grp == nil {
			continue
		}
		members, err := e.store.ListMembersOfGroup(ctx, gid)
		if err != nil {
			return nil, storeErr("list members of group", err)
		}
		for _, m := range members {
			if _, ok := seen[m.UserID]; ok {
				continue
			}
			seen[m.UserID] = struct{}{}
			entries = append(entries, groupEntry(g, m.UserID, gid))
		}
	}

	return &AccessList{
		ResourceID: resourceID,
		AccessType: AccessListSpecific,
		TotalUsers: len(seen),
		Entries:    entries,
	}, nil
}

// resolveGlobalAccess handles the derived-global branch: every
// registered user has access, with no per-user grant metadata.
func (e *Engine) resolveGlobalAccess(ctx context.Context, resourceID primitive.ObjectID) (*AccessList, error) {
	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	entries := make([]AccessEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, AccessEntry{UserID: u.ID, AccessType: AccessGlobal})
	}
	return &AccessList{
		ResourceID: resourceID,
		AccessType: AccessListGlobal,
		TotalUsers: len(users),
		Entries:    entries,
	}, nil
}

func directEntry(g models.ShareGrant, userID primitive.ObjectID) AccessEntry {
	sharedBy, sharedAt := g.SharedBy, g.SharedAt
	return AccessEntry{
		UserID:      userID,
		AccessType:  AccessDirect,
		SharedBy:    &sharedBy,
		SharedAt:    &sharedAt,
		Permissions: g.Permissions,
	}
}

func groupEntry(g models.ShareGrant, userID, groupID primitive.ObjectID) AccessEntry {
	sharedBy, sharedAt := g.SharedBy, g.SharedAt
	return AccessEntry{
		UserID:      userID,
		AccessType:  AccessGroup,
		GroupID:     &groupID,
		SharedBy:    &sharedBy,
		SharedAt:    &sharedAt,
		Permissions: g.Permissions,
	}
}
