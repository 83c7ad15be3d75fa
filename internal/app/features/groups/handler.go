// internal/app/features/groups/handler.go
package groups

import (
	groupstore "github.com/sharehub/sharehub/internal/app/store/groups"
	membershipstore "github.com/sharehub/sharehub/internal/app/store/memberships"
	userstore "github.com/sharehub/sharehub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
// Membership management lives here too, since a membership edge has no
// life of its own outside its group.
type Handler struct {
	Groups      *groupstore.Store
	Memberships *membershipstore.Store
	Users       *userstore.Store
	Log         *zap.Logger
}

// NewHandler constructs a groups Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:      groupstore.New(db),
		Memberships: membershipstore.New(db),
		Users:       userstore.New(db),
		Log:         logger,
	}
}
