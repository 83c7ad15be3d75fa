// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user and returns it with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, email, fullName string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		EmailCI:    text.Fold(email),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// CreateGroup inserts a test group and returns it with its generated ID.
func (f *Fixtures) CreateGroup(ctx context.Context, name string) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("create test group: %v", err)
	}
	return g
}

// CreateMembership joins user to group and returns the edge.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, groupID primitive.ObjectID) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		GroupID:  groupID,
		JoinedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("create test membership: %v", err)
	}
	return m
}

// CreateResource inserts a test resource owned by ownerID.
func (f *Fixtures) CreateResource(ctx context.Context, ownerID primitive.ObjectID, name string) models.Resource {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Resource{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Type:      "document",
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("resources").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("create test resource: %v", err)
	}
	return r
}

// CreateGrant inserts a share grant document directly, bypassing the
// engine's validation. Useful for constructing dangling grants.
func (f *Fixtures) CreateGrant(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string, sharedBy primitive.ObjectID) models.ShareGrant {
	f.t.Helper()

	g := models.ShareGrant{
		ID:          primitive.NewObjectID(),
		ResourceID:  resourceID,
		ShareType:   shareType,
		TargetID:    targetID,
		SharedBy:    sharedBy,
		SharedAt:    time.Now().UTC(),
		Permissions: models.DefaultPermissions,
	}
	if _, err := f.db.Collection("share_grants").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("create test grant: %v", err)
	}
	return g
}
