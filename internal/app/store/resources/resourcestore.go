// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/sharehub/sharehub/internal/app/system/paging"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c      *mongo.Collection
	grants *mongo.Collection
}

// ErrInvalidResource is returned by Create when a required field is
// missing.
var ErrInvalidResource = errors.New("resource requires a name and an owner")

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("resources"),
		grants: db.Collection("share_grants"),
	}
}

// Create inserts a new resource, setting NameCI and timestamps. It
// lightly validates Name, Type, and OwnerID.
func (s *Store) Create(ctx context.Context, r models.Resource) (models.Resource, error) {
	if strings.TrimSpace(r.Name) == "" || r.OwnerID.IsZero() {
		return models.Resource{}, ErrInvalidResource
	}
	if r.Type == "" {
		r.Type = models.DefaultResourceType
	}

	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.NameCI = text.Fold(r.Name)
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// GetByID returns a single resource by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Resource, error) {
	var r models.Resource
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// List returns all resources sorted by folded name, then _id.
func (s *Store) List(ctx context.Context) ([]models.Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var resources []models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// ListPage returns one page of resources sorted by folded name, using
// keyset cursors.
func (s *Store) ListPage(ctx context.Context, before, after string) ([]models.Resource, paging.Result, string, string, error) {
	cfg := paging.ConfigureKeyset(before, after)

	filter := bson.M{}
	if win := cfg.KeysetWindow("name_ci"); win != nil {
		filter = win
	}

	find := options.Find()
	cfg.ApplyToFind(find, "name_ci")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, paging.Result{}, "", "", err
	}
	defer cur.Close(ctx)

	var resources []models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, paging.Result{}, "", "", err
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(resources)
	}
	page := paging.TrimPage(&resources, before, after)
	prev, next := paging.BuildCursors(resources,
		func(r models.Resource) string { return r.NameCI },
		func(r models.Resource) primitive.ObjectID { return r.ID },
	)
	return resources, page, prev, next, nil
}

// ListGlobal returns the resources that currently carry a global-type
// grant. Global state is derived from the grants at read time; there is
// no stored flag to drift out of sync with the grant.
func (s *Store) ListGlobal(ctx context.Context) ([]models.Resource, error) {
	cur, err := s.grants.Find(ctx, bson.M{"share_type": models.ShareTypeGlobal})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grants []models.ShareGrant
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.ResourceID)
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	rcur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer rcur.Close(ctx)

	var resources []models.Resource
	if err := rcur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// UpdateInfo modifies name, type, and description, refreshing UpdatedAt.
// Empty name/type leave the corresponding field unchanged; description
// may be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, typ, desc string) error {
	set := bson.M{
		"description": desc,
		"updated_at":  time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if strings.TrimSpace(typ) != "" {
		set["type"] = typ
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the resource and cascades every grant that points at
// it. Returns the number of resource documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, nil
	}
	if _, err := s.grants.DeleteMany(ctx, bson.M{"resource_id": id}); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}
