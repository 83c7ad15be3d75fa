// internal/app/engine/aggregate.go
package engine

import (
	"context"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// membershipIndex is the shared view of the group_memberships collection
// used by both report passes. Building it once from a single scan keeps
// each pass linear in resources + users + memberships instead of
// re-expanding membership per resolved entity.
type membershipIndex struct {
	membersByGroup map[primitive.ObjectID][]primitive.ObjectID
	groupsByUser   map[primitive.ObjectID][]primitive.ObjectID
}

func (e *Engine) buildMembershipIndex(ctx context.Context) (*membershipIndex, error) {
	memberships, err := e.store.ListMemberships(ctx)
	if err != nil {
		return nil, storeErr("list memberships", err)
	}
	idx := &membershipIndex{
		membersByGroup: make(map[primitive.ObjectID][]primitive.ObjectID),
		groupsByUser:   make(map[primitive.ObjectID][]primitive.ObjectID),
	}
	for _, m := range memberships {
		idx.membersByGroup[m.GroupID] = append(idx.membersByGroup[m.GroupID], m.UserID)
		idx.groupsByUser[m.UserID] = append(idx.groupsByUser[m.UserID], m.GroupID)
	}
	return idx, nil
}

// ResourcesWithUserCount reports, for every resource, how many distinct
// users can access it. Counts agree exactly with what
// ResolveResourceAccess would return for each resource.
func (e *Engine) ResourcesWithUserCount(ctx context.Context) ([]ResourceUserCount, error) {
	resources, err := e.store.ListResources(ctx)
	if err != nil {
		return nil, storeErr("list resources", err)
	}
	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return nil, storeErr("list groups", err)
	}
	idx, err := e.buildMembershipIndex(ctx)
	if err != nil {
		return nil, err
	}

	userExists := make(map[primitive.ObjectID]struct{}, len(users))
	for _, u := range users {
		userExists[u.ID] = struct{}{}
	}
	groupExists := make(map[primitive.ObjectID]struct{}, len(groups))
	for _, g := range groups {
		groupExists[g.ID] = struct{}{}
	}

	grantSets := make([][]models.ShareGrant, len(resources))
	err = e.forEachLimit(ctx, len(resources), func(ctx context.Context, i int) error {
		grants, err := e.store.ListGrantsOfResource(ctx, resources[i].ID)
		if err != nil {
			return storeErr("list grants of resource", err)
		}
		grantSets[i] = grants
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]ResourceUserCount, 0, len(resources))
	for i, res := range resources {
		out = append(out, e.countResourceUsers(res, grantSets[i], len(users), userExists, groupExists, idx))
	}
	return out, nil
}

// countResourceUsers applies the forward-resolution counting rules to
// one resource using the pre-fetched indexes.
func (e *Engine) countResourceUsers(res models.Resource, grants []models.ShareGrant, totalUsers int, userExists, groupExists map[primitive.ObjectID]struct{}, idx *membershipIndex) ResourceUserCount {
	for _, g := range grants {
		if g.ShareType == models.ShareTypeGlobal {
			return ResourceUserCount{Resource: res, UserCount: totalUsers, AccessType: AccessListGlobal}
		}
	}

	seen := make(map[primitive.ObjectID]struct{})
	for _, g := range grants {
		if g.ShareType != models.ShareTypeUser {
			continue
		}
		uid, err := primitive.ObjectIDFromHex(g.TargetID)
		if err != nil {
			continue
		}
		if _, ok := userExists[uid]; !ok {
			continue
		}
		seen[uid] = struct{}{}
	}
	for _, g := range grants {
		if g.ShareType != models.ShareTypeGroup {
			continue
		}
		gid, err := primitive.ObjectIDFromHex(g.TargetID)
		if err != nil {
			continue
		}
		if _, ok := groupExists[gid]; !ok {
			continue
		}
		for _, uid := range idx.membersByGroup[gid] {
			seen[uid] = struct{}{}
		}
	}
	return ResourceUserCount{Resource: res, UserCount: len(seen), AccessType: AccessListSpecific}
}

// UsersWithResourceCount reports, for every user, how many distinct
// resources they can reach. Counts agree exactly with what
// ResolveUserResources would return for each user.
func (e *Engine) UsersWithResourceCount(ctx context.Context) ([]UserResourceCount, error) {
	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	resources, err := e.store.ListResources(ctx)
	if err != nil {
		return nil, storeErr("list resources", err)
	}
	globals, err := e.store.ListGlobalResources(ctx)
	if err != nil {
		return nil, storeErr("list global resources", err)
	}
	idx, err := e.buildMembershipIndex(ctx)
	if err != nil {
		return nil, err
	}

	resourceExists := make(map[primitive.ObjectID]struct{}, len(resources))
	for _, r := range resources {
		resourceExists[r.ID] = struct{}{}
	}

	// Each distinct group's grants are fetched once, no matter how many
	// users belong to it.
	groupIDs := make([]primitive.ObjectID, 0, len(idx.membersByGroup))
	for gid := range idx.membersByGroup {
		groupIDs = append(groupIDs, gid)
	}
	groupGrants := make([][]models.ShareGrant, len(groupIDs))
	err = e.forEachLimit(ctx, len(groupIDs), func(ctx context.Context, i int) error {
		grants, err := e.store.ListGrantsTargeting(ctx, models.ShareTypeGroup, groupIDs[i].Hex())
		if err != nil {
			return storeErr("list group grants", err)
		}
		groupGrants[i] = grants
		return nil
	})
	if err != nil {
		return nil, err
	}
	grantsByGroup := make(map[primitive.ObjectID][]models.ShareGrant, len(groupIDs))
	for i, gid := range groupIDs {
		grantsByGroup[gid] = groupGrants[i]
	}

	directGrants := make([][]models.ShareGrant, len(users))
	err = e.forEachLimit(ctx, len(users), func(ctx context.Context, i int) error {
		grants, err := e.store.ListGrantsTargeting(ctx, models.ShareTypeUser, users[i].ID.Hex())
		if err != nil {
			return storeErr("list direct grants", err)
		}
		directGrants[i] = grants
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]UserResourceCount, 0, len(users))
	for i, u := range users {
		seen := make(map[primitive.ObjectID]struct{})
		for _, g := range directGrants[i] {
			if _, ok := resourceExists[g.ResourceID]; ok {
				seen[g.ResourceID] = struct{}{}
			}
		}
		for _, gid := range idx.groupsByUser[u.ID] {
			for _, g := range grantsByGroup[gid] {
				if _, ok := resourceExists[g.ResourceID]; ok {
					seen[g.ResourceID] = struct{}{}
				}
			}
		}
		for _, r := range globals {
			seen[r.ID] = struct{}{}
		}
		out = append(out, UserResourceCount{User: u, ResourceCount: len(seen)})
	}
	return out, nil
}
