// internal/app/system/seed/seed.go

// Package seed inserts a small demo data set for development
// environments. It only runs against an empty database.
package seed

import (
	"context"

	"github.com/sharehub/sharehub/internal/app/engine"
	"github.com/sharehub/sharehub/internal/app/store"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DemoData populates a handful of users, groups, resources, and grants
// so a fresh instance has something to resolve. When any user already
// exists the seed is skipped entirely.
func DemoData(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	bundle := store.NewBundle(db)

	existing, err := bundle.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("seed skipped, database not empty", zap.Int("users", len(existing)))
		return nil
	}

	alice, err := bundle.Users.Create(ctx, models.User{Email: "alice@example.com", FullName: "Alice Chen"})
	if err != nil {
		return err
	}
	bob, err := bundle.Users.Create(ctx, models.User{Email: "bob@example.com", FullName: "Bob Ortiz"})
	if err != nil {
		return err
	}
	carol, err := bundle.Users.Create(ctx, models.User{Email: "carol@example.com", FullName: "Carol Novak"})
	if err != nil {
		return err
	}

	eng, err := bundle.Groups.Create(ctx, models.Group{Name: "Engineering", Description: "Product engineering"})
	if err != nil {
		return err
	}
	if _, err := bundle.Memberships.Add(ctx, eng.ID, bob.ID); err != nil {
		return err
	}
	if _, err := bundle.Memberships.Add(ctx, eng.ID, carol.ID); err != nil {
		return err
	}

	design, err := bundle.Resources.Create(ctx, models.Resource{
		OwnerID: alice.ID, Type: models.ResourceTypeDocument, Name: "Design Doc",
		Description: "Architecture notes",
	})
	if err != nil {
		return err
	}
	handbook, err := bundle.Resources.Create(ctx, models.Resource{
		OwnerID: alice.ID, Type: models.ResourceTypeDocument, Name: "Handbook",
		Description: "Company handbook",
	})
	if err != nil {
		return err
	}

	resolver := engine.New(bundle, logger, 0)
	if _, err := resolver.ShareResource(ctx, design.ID, models.ShareTypeUser, alice.ID.Hex(), alice.ID, []string{"read", "write"}); err != nil {
		return err
	}
	if _, err := resolver.ShareResource(ctx, design.ID, models.ShareTypeGroup, eng.ID.Hex(), alice.ID, nil); err != nil {
		return err
	}
	if _, err := resolver.ShareResource(ctx, handbook.ID, models.ShareTypeGlobal, "", alice.ID, nil); err != nil {
		return err
	}

	logger.Info("seeded demo data",
		zap.Int("users", 3),
		zap.Int("groups", 1),
		zap.Int("resources", 2))
	return nil
}
