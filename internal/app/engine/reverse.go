// internal/app/engine/reverse.go
package engine

import (
	"context"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveUserResources returns every resource the user can reach and
// why. Returns ErrNotFound if the user does not exist.
//
// The per-group grant lookups are independent reads and run with
// bounded parallelism; the merge is deterministic regardless: direct
// grants first, then group grants in membership order, then global
// resources, deduped by resource with first-writer-wins.
func (e *Engine) ResolveUserResources(ctx context.Context, userID primitive.ObjectID) (*ResourceList, error) {
	u, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	if u == nil {
		return nil, notFoundf("user %s", userID.Hex())
	}

	memberships, err := e.store.ListMembershipsOfUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list memberships", err)
	}

	// Slot 0 holds the direct grants, slots 1..n the per-group grants,
	// keyed by membership position so the merge order is fixed.
	grantSets := make([][]models.ShareGrant, len(memberships)+1)
	err = e.forEachLimit(ctx, len(memberships)+1, func(ctx context.Context, i int) error {
		if i == 0 {
			grants, err := e.store.ListGrantsTargeting(ctx, models.ShareTypeUser, userID.Hex())
			if err != nil {
				return storeErr("list direct grants", err)
			}
			grantSets[0] = grants
			return nil
		}
		grants, err := e.store.ListGrantsTargeting(ctx, models.ShareTypeGroup, memberships[i-1].GroupID.Hex())
		if err != nil {
			return storeErr("list group grants", err)
		}
		grantSets[i] = grants
		return nil
	})
	if err != nil {
		return nil, err
	}

	globals, err := e.store.ListGlobalResources(ctx)
	if err != nil {
		return nil, storeErr("list global resources", err)
	}

	seen := make(map[primitive.ObjectID]struct{})
	out := []ResourceEntry{}

	appendGrant := func(g models.ShareGrant, accessType AccessType, groupID *primitive.ObjectID) error {
		if _, ok := seen[g.ResourceID]; ok {
			return nil
		}
		res, err := e.store.GetResource(ctx, g.ResourceID)
		if err != nil {
			return storeErr("get resource", err)
		}
		if res == nil {
			// Grant outlived its resource; stale, not an error.
			return nil
		}
		seen[g.ResourceID] = struct{}{}
		sharedBy, sharedAt := g.SharedBy, g.SharedAt
		out = append(out, ResourceEntry{
			Resource:    *res,
			AccessType:  accessType,
			GroupID:     groupID,
			SharedBy:    &sharedBy,
			SharedAt:    &sharedAt,
			Permissions: g.Permissions,
		})
		return nil
	}

	for _, g := range grantSets[0] {
		if err := appendGrant(g, AccessDirect, nil); err != nil {
			return nil, err
		}
	}
	for i, m := range memberships {
		groupID := m.GroupID
		for _, g := range grantSets[i+1] {
			if err := appendGrant(g, AccessGroup, &groupID); err != nil {
				return nil, err
			}
		}
	}
	for _, res := range globals {
		if _, ok := seen[res.ID]; ok {
			continue
		}
		seen[res.ID] = struct{}{}
		out = append(out, ResourceEntry{
			Resource:    res,
			AccessType:  AccessGlobal,
			Permissions: models.DefaultPermissions,
		})
	}

	return &ResourceList{
		UserID:         userID,
		TotalResources: len(seen),
		Resources:      out,
	}, nil
}
