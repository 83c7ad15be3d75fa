// internal/app/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/sharehub/sharehub/internal/app/store/grants"
	"github.com/sharehub/sharehub/internal/app/store/groups"
	"github.com/sharehub/sharehub/internal/app/store/memberships"
	"github.com/sharehub/sharehub/internal/app/store/resources"
	"github.com/sharehub/sharehub/internal/app/store/users"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Bundle groups the per-collection stores and adapts them to the
// resolution engine's Store interface. Point lookups translate
// mongo.ErrNoDocuments into (nil, nil), which is how the engine is
// told an entity is absent rather than the store being down.
type Bundle struct {
	Users       *userstore.Store
	Groups      *groupstore.Store
	Memberships *membershipstore.Store
	Resources   *resourcestore.Store
	Grants      *grantstore.Store
}

// NewBundle wires the per-collection stores over one database handle.
func NewBundle(db *mongo.Database) *Bundle {
	return &Bundle{
		Users:       userstore.New(db),
		Groups:      groupstore.New(db),
		Memberships: membershipstore.New(db),
		Resources:   resourcestore.New(db),
		Grants:      grantstore.New(db),
	}
}

func (b *Bundle) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := b.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b *Bundle) ListUsers(ctx context.Context) ([]models.User, error) {
	return b.Users.List(ctx)
}

func (b *Bundle) GetGroup(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	g, err := b.Groups.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (b *Bundle) ListGroups(ctx context.Context) ([]models.Group, error) {
	return b.Groups.List(ctx)
}

func (b *Bundle) GetResource(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	r, err := b.Resources.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (b *Bundle) ListResources(ctx context.Context) ([]models.Resource, error) {
	return b.Resources.List(ctx)
}

func (b *Bundle) ListGlobalResources(ctx context.Context) ([]models.Resource, error) {
	return b.Resources.ListGlobal(ctx)
}

func (b *Bundle) ListMembershipsOfUser(ctx context.Context, userID primitive.ObjectID) ([]models.GroupMembership, error) {
	return b.Memberships.ListByUser(ctx, userID)
}

func (b *Bundle) ListMembersOfGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error) {
	return b.Memberships.ListByGroup(ctx, groupID)
}

func (b *Bundle) ListMemberships(ctx context.Context) ([]models.GroupMembership, error) {
	return b.Memberships.ListAll(ctx)
}

func (b *Bundle) ListGrantsOfResource(ctx context.Context, resourceID primitive.ObjectID) ([]models.ShareGrant, error) {
	return b.Grants.ListByResource(ctx, resourceID)
}

func (b *Bundle) ListGrantsTargeting(ctx context.Context, shareType models.ShareType, targetID string) ([]models.ShareGrant, error) {
	return b.Grants.ListByTarget(ctx, shareType, targetID)
}

func (b *Bundle) PutGrant(ctx context.Context, g models.ShareGrant) (models.ShareGrant, error) {
	return b.Grants.Put(ctx, g)
}

func (b *Bundle) DeleteGrant(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string) error {
	return b.Grants.Delete(ctx, resourceID, shareType, targetID)
}
