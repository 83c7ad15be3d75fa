// internal/app/store/grants/grantstore.go
package grantstore

import (
	"context"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c         *mongo.Collection
	users     *mongo.Collection
	groups    *mongo.Collection
	resources *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("share_grants"),
		users:     db.Collection("users"),
		groups:    db.Collection("groups"),
		resources: db.Collection("resources"),
	}
}

// key is the composite grant identity. The collection carries a unique
// index over these three fields, so Put can never produce two grants
// for the same (resource, type, target).
func key(resourceID primitive.ObjectID, shareType models.ShareType, targetID string) bson.M {
	return bson.M{
		"resource_id": resourceID,
		"share_type":  shareType,
		"target_id":   targetID,
	}
}

// Put inserts the grant or, when its composite key already exists,
// overwrites the stored permissions/shared_by/shared_at. The returned
// grant carries the stored _id.
func (s *Store) Put(ctx context.Context, g models.ShareGrant) (models.ShareGrant, error) {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}

	filter := key(g.ResourceID, g.ShareType, g.TargetID)

	var existing models.ShareGrant
	err := s.c.FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == mongo.ErrNoDocuments:
		// fall through to upsert with the fresh _id
	case err != nil:
		return models.ShareGrant{}, err
	default:
		g.ID = existing.ID
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.c.ReplaceOne(ctx, filter, g, opts); err != nil {
		return models.ShareGrant{}, err
	}
	return g, nil
}

// Delete removes the grant under the composite key. Deleting an absent
// grant is not an error.
func (s *Store) Delete(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string) error {
	_, err := s.c.DeleteOne(ctx, key(resourceID, shareType, targetID))
	return err
}

// ListByResource returns every grant for one resource in stored order.
func (s *Store) ListByResource(ctx context.Context, resourceID primitive.ObjectID) ([]models.ShareGrant, error) {
	return s.list(ctx, bson.M{"resource_id": resourceID})
}

// ListByTarget returns every grant of the given type pointing at the
// given target.
func (s *Store) ListByTarget(ctx context.Context, shareType models.ShareType, targetID string) ([]models.ShareGrant, error) {
	return s.list(ctx, bson.M{"share_type": shareType, "target_id": targetID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.ShareGrant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "shared_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grants []models.ShareGrant
	if err := cur.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// DeleteByResource removes all grants for a resource. Returns the
// number of documents deleted.
func (s *Store) DeleteByResource(ctx context.Context, resourceID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"resource_id": resourceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByTarget removes all grants of the given type pointing at the
// given target. Returns the number of documents deleted.
func (s *Store) DeleteByTarget(ctx context.Context, shareType models.ShareType, targetID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"share_type": shareType, "target_id": targetID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SweepDangling removes grants whose resource or target document no
// longer exists. Deletes normally cascade their grants, so dangling
// grants only appear after a partial cascade or out-of-band writes;
// resolvers skip them either way, this just reclaims the documents.
// Returns the number of grants removed.
func (s *Store) SweepDangling(ctx context.Context) (int64, error) {
	grants, err := s.list(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if len(grants) == 0 {
		return 0, nil
	}

	resourceIDs := make(map[primitive.ObjectID]struct{})
	userIDs := make(map[primitive.ObjectID]struct{})
	groupIDs := make(map[primitive.ObjectID]struct{})
	for _, g := range grants {
		resourceIDs[g.ResourceID] = struct{}{}
		switch g.ShareType {
		case models.ShareTypeUser:
			if id, err := primitive.ObjectIDFromHex(g.TargetID); err == nil {
				userIDs[id] = struct{}{}
			}
		case models.ShareTypeGroup:
			if id, err := primitive.ObjectIDFromHex(g.TargetID); err == nil {
				groupIDs[id] = struct{}{}
			}
		}
	}

	liveResources, err := existingIDs(ctx, s.resources, resourceIDs)
	if err != nil {
		return 0, err
	}
	liveUsers, err := existingIDs(ctx, s.users, userIDs)
	if err != nil {
		return 0, err
	}
	liveGroups, err := existingIDs(ctx, s.groups, groupIDs)
	if err != nil {
		return 0, err
	}

	var stale []primitive.ObjectID
	for _, g := range grants {
		if _, ok := liveResources[g.ResourceID]; !ok {
			stale = append(stale, g.ID)
			continue
		}
		switch g.ShareType {
		case models.ShareTypeUser:
			if !targetAlive(g.TargetID, liveUsers) {
				stale = append(stale, g.ID)
			}
		case models.ShareTypeGroup:
			if !targetAlive(g.TargetID, liveGroups) {
				stale = append(stale, g.ID)
			}
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func targetAlive(targetID string, live map[primitive.ObjectID]struct{}) bool {
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return false
	}
	_, ok := live[id]
	return ok
}

// existingIDs returns the subset of ids that exist in coll.
func existingIDs(ctx context.Context, coll *mongo.Collection, ids map[primitive.ObjectID]struct{}) (map[primitive.ObjectID]struct{}, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]struct{}{}, nil
	}
	in := make([]primitive.ObjectID, 0, len(ids))
	for id := range ids {
		in = append(in, id)
	}
	raw, err := coll.Distinct(ctx, "_id", bson.M{"_id": bson.M{"$in": in}})
	if err != nil {
		return nil, err
	}
	live := make(map[primitive.ObjectID]struct{}, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			live[id] = struct{}{}
		}
	}
	return live, nil
}
