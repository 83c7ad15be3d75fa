// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"net/http"

	"github.com/sharehub/sharehub/internal/app/engine"
	"github.com/sharehub/sharehub/internal/app/system/httpjson"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the batch count reports. Both endpoints resolve over
// every entity, so they run under the long timeout.
type Handler struct {
	Eng *engine.Engine
	Log *zap.Logger
}

// NewHandler constructs a reports Handler.
func NewHandler(eng *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{Eng: eng, Log: logger}
}

// HandleResourceCounts handles GET /api/reports/resources. One row per
// resource with the number of distinct users who can access it.
func (h *Handler) HandleResourceCounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.Eng.ResourcesWithUserCount(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, rows)
}

// HandleUserCounts handles GET /api/reports/users. One row per user
// with the number of distinct resources they can reach.
func (h *Handler) HandleUserCounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.Eng.UsersWithResourceCount(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, rows)
}
