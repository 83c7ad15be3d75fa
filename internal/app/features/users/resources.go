// internal/app/features/users/resources.go
package users

import (
	"context"
	"net/http"

	"github.com/sharehub/sharehub/internal/app/system/httpjson"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
)

// HandleResources handles GET /api/users/{id}/resources. It returns
// every resource the user can reach, with the access path that grants
// it.
func (h *Handler) HandleResources(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Eng.ResolveUserResources(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, list)
}
