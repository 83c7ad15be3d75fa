// internal/app/store/users/userstore.go
package userstore

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
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	ErrInvalidUser    = errors.New("user requires an email")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("users"),
		memberships: db.Collection("group_memberships"),
		grants:      db.Collection("share_grants"),
	}
}

// Create inserts a new user, setting EmailCI/FullNameCI and timestamps.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return models.User{}, ErrInvalidUser
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = text.Fold(u.Email)
	u.FullNameCI = text.Fold(u.FullName)
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// List returns all users sorted by folded full name, then _id.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListPage returns one page of users sorted by folded full name, using
// keyset cursors. The returned prev/next cursors address the adjacent
// pages when page.HasPrev/HasNext indicate they exist.
func (s *Store) ListPage(ctx context.Context, before, after string) ([]models.User, paging.Result, string, string, error) {
	cfg := paging.ConfigureKeyset(before, after)

	filter := bson.M{}
	if win := cfg.KeysetWindow("full_name_ci"); win != nil {
		filter = win
	}

	find := options.Find()
	cfg.ApplyToFind(find, "full_name_ci")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, paging.Result{}, "", "", err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, paging.Result{}, "", "", err
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(users)
	}
	page := paging.TrimPage(&users, before, after)
	prev, next := paging.BuildCursors(users,
		func(u models.User) string { return u.FullNameCI },
		func(u models.User) primitive.ObjectID { return u.ID },
	)
	return users, page, prev, next, nil
}

// UpdateInfo modifies email and full name, refreshing the folded fields
// and UpdatedAt. Empty values leave the corresponding field unchanged.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, email, fullName string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(email) != "" {
		set["email"] = email
		set["email_ci"] = text.Fold(email)
	}
	if strings.TrimSpace(fullName) != "" {
		set["full_name"] = fullName
		set["full_name_ci"] = text.Fold(fullName)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the user and cascades the membership edges and
// user-targeted grants that this user's lifecycle owns. Grants the user
// issued (shared_by) are left in place; resolvers treat them normally.
// Returns the number of user documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, nil
	}
	if _, err := s.memberships.DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
		return res.DeletedCount, err
	}
	if _, err := s.grants.DeleteMany(ctx, bson.M{"share_type": models.ShareTypeUser, "target_id": id.Hex()}); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}
