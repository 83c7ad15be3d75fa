// internal/app/engine/store.go
package engine

import (
	"context"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the persistence surface the engine resolves against. The
// engine only needs point lookups and indexed scans; how those are
// implemented (Mongo, in-memory, anything else) is not its concern.
//
// Point lookups return (nil, nil) when the entity does not exist, so
// the resolvers can skip dangling references without treating them as
// failures. Any non-nil error is an infrastructure failure and is
// surfaced to callers wrapped in ErrStoreUnavailable.
type Store interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	GetGroup(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)

	GetResource(ctx context.Context, id primitive.ObjectID) (*models.Resource, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
	// ListGlobalResources returns the resources for which a global-type
	// grant exists. Implementations derive this from the grants, never
	// from a stored flag.
	ListGlobalResources(ctx context.Context) ([]models.Resource, error)

	ListMembershipsOfUser(ctx context.Context, userID primitive.ObjectID) ([]models.GroupMembership, error)
	ListMembersOfGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error)
	// ListMemberships returns every membership edge. The aggregator uses
	// it to build its shared membership index in one scan.
	ListMemberships(ctx context.Context) ([]models.GroupMembership, error)

	ListGrantsOfResource(ctx context.Context, resourceID primitive.ObjectID) ([]models.ShareGrant, error)
	ListGrantsTargeting(ctx context.Context, shareType models.ShareType, targetID string) ([]models.ShareGrant, error)

	// PutGrant inserts or overwrites the grant stored under the grant's
	// composite key (resource_id, share_type, target_id).
	PutGrant(ctx context.Context, g models.ShareGrant) (models.ShareGrant, error)
	// DeleteGrant removes the grant under the composite key. Deleting a
	// grant that does not exist is not an error.
	DeleteGrant(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string) error
}

// Engine computes the deduplicated, provenance-annotated access
// relationships implied by direct, group, and global share grants. It
// is stateless between calls; concurrent invocations never conflict.
type Engine struct {
	store       Store
	log         *zap.Logger
	concurrency int
}

// defaultConcurrency bounds the fan-out of independent store lookups
// within a single resolution.
const defaultConcurrency = 8

// New builds an Engine over the given store. concurrency caps the
// number of simultaneous store lookups during fan-out; values < 1 fall
// back to the default.
func New(store Store, logger *zap.Logger, concurrency int) *Engine {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Engine{store: store, log: logger, concurrency: concurrency}
}
