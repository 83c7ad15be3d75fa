// internal/app/features/resources/handler.go
package resources

import (
	"github.com/sharehub/sharehub/internal/app/engine"
	resourcestore "github.com/sharehub/sharehub/internal/app/store/resources"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the resources
// feature. Sharing and access resolution go through the engine; plain
// CRUD goes straight to the store.
type Handler struct {
	Resources *resourcestore.Store
	Eng       *engine.Engine
	Log       *zap.Logger
}

// NewHandler constructs a resources Handler.
func NewHandler(db *mongo.Database, eng *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		Resources: resourcestore.New(db),
		Eng:       eng,
		Log:       logger,
	}
}
