// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/sharehub/sharehub/internal/app/system/paging"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c           *mongo.Collection
	memberships *mongo.Collection
	grants      *mongo.Collection
}

var (
	ErrDuplicateGroupName = errors.New("a group with this name already exists")
	ErrInvalidGroup       = errors.New("group requires a name")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("groups"),
		memberships: db.Collection("group_memberships"),
		grants:      db.Collection("share_grants"),
	}
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	if strings.TrimSpace(g.Name) == "" {
		return models.Group{}, ErrInvalidGroup
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, g)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns all groups sorted by folded name, then _id.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListPage returns one page of groups sorted by folded name, using
// keyset cursors.
func (s *Store) ListPage(ctx context.Context, before, after string) ([]models.Group, paging.Result, string, string, error) {
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

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, paging.Result{}, "", "", err
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(groups)
	}
	page := paging.TrimPage(&groups, before, after)
	prev, next := paging.BuildCursors(groups,
		func(g models.Group) string { return g.NameCI },
		func(g models.Group) primitive.ObjectID { return g.ID },
	)
	return groups, page, prev, next, nil
}

// UpdateInfo modifies name and description, refreshing UpdatedAt.
// An empty name leaves the name unchanged; description may be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string) error {
	set := bson.M{
		"description": desc,
		"updated_at":  time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateGroupName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the group and cascades its membership edges and
// group-targeted grants. Returns the number of group documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, nil
	}
	if _, err := s.memberships.DeleteMany(ctx, bson.M{"group_id": id}); err != nil {
		return res.DeletedCount, err
	}
	if _, err := s.grants.DeleteMany(ctx, bson.M{"share_type": models.ShareTypeGroup, "target_id": id.Hex()}); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}
