// internal/app/engine/mutate.go
package engine

import (
	"context"
	"time"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ShareResource creates (or overwrites) a grant of the given type.
//
// For user and group grants, targetID must be the hex id of an existing
// user or group. For global grants the target is forced to the fixed
// sentinel, so at most one global grant can exist per resource; the
// resource's global state is derived from that grant's existence, never
// written separately.
//
// Re-sharing an existing (resource, type, target) key overwrites the
// grant's permissions, sharedBy, and sharedAt. Empty permissions default
// to read-only.
func (e *Engine) ShareResource(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string, sharedBy primitive.ObjectID, permissions []string) (*models.ShareGrant, error) {
	if !shareType.Valid() {
		return nil, validationf("unknown share type %q", shareType)
	}

	res, err := e.store.GetResource(ctx, resourceID)
	if err != nil {
		return nil, storeErr("get resource", err)
	}
	if res == nil {
		return nil, notFoundf("resource %s", resourceID.Hex())
	}

	switch shareType {
	case models.ShareTypeUser:
		uid, err := primitive.ObjectIDFromHex(targetID)
		if err != nil {
			return nil, validationf("target_id %q is not a valid user id", targetID)
		}
		u, err := e.store.GetUser(ctx, uid)
		if err != nil {
			return nil, storeErr("get user", err)
		}
		if u == nil {
			return nil, notFoundf("user %s", targetID)
		}
	case models.ShareTypeGroup:
		gid, err := primitive.ObjectIDFromHex(targetID)
		if err != nil {
			return nil, validationf("target_id %q is not a valid group id", targetID)
		}
		g, err := e.store.GetGroup(ctx, gid)
		if err != nil {
			return nil, storeErr("get group", err)
		}
		if g == nil {
			return nil, notFoundf("group %s", targetID)
		}
	case models.ShareTypeGlobal:
		targetID = models.GlobalTarget
	}

	if len(permissions) == 0 {
		permissions = models.DefaultPermissions
	}

	grant := models.ShareGrant{
		ResourceID:  resourceID,
		ShareType:   shareType,
		TargetID:    targetID,
		SharedBy:    sharedBy,
		SharedAt:    time.Now().UTC(),
		Permissions: permissions,
	}

	stored, err := e.store.PutGrant(ctx, grant)
	if err != nil {
		return nil, storeErr("put grant", err)
	}

	e.log.Info("resource shared",
		zap.String("resource_id", resourceID.Hex()),
		zap.String("share_type", string(shareType)),
		zap.String("target_id", targetID))
	return &stored, nil
}

// UnshareResource deletes the grant under (resource, type, target).
// Unsharing a grant that does not exist is a no-op, not a failure.
// Removing a global grant also removes the resource's derived global
// state, by construction.
func (e *Engine) UnshareResource(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string) error {
	if !shareType.Valid() {
		return validationf("unknown share type %q", shareType)
	}
	if shareType == models.ShareTypeGlobal {
		targetID = models.GlobalTarget
	}

	if err := e.store.DeleteGrant(ctx, resourceID, shareType, targetID); err != nil {
		return storeErr("delete grant", err)
	}

	e.log.Info("resource unshared",
		zap.String("resource_id", resourceID.Hex()),
		zap.String("share_type", string(shareType)),
		zap.String("target_id", targetID))
	return nil
}
