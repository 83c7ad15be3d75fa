// internal/app/features/users/handler.go
package users

import (
	"github.com/sharehub/sharehub/internal/app/engine"
	userstore "github.com/sharehub/sharehub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	Users *userstore.Store
	Eng   *engine.Engine
	Log   *zap.Logger
}

// NewHandler constructs a users Handler. It is called from the
// bootstrap BuildHandler function, where the DB, engine, and logger
// are already initialized.
func NewHandler(db *mongo.Database, eng *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Eng:   eng,
		Log:   logger,
	}
}
