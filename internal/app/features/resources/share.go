// internal/app/features/resources/share.go
package resources

import (
	"context"
	"net/http"

	"github.com/sharehub/sharehub/internal/app/system/httpjson"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// shareRequest is the body of POST and DELETE /api/resources/{id}/share.
// TargetID is ignored for global shares; unshare ignores Permissions
// and SharedBy.
type shareRequest struct {
	ShareType   string   `json:"shareType"`
	TargetID    string   `json:"targetId"`
	SharedBy    string   `json:"sharedBy"`
	Permissions []string `json:"permissions"`
}

// HandleAccess handles GET /api/resources/{id}/access. It returns the
// full deduplicated user list with access provenance.
func (h *Handler) HandleAccess(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Eng.ResolveResourceAccess(ctx, id)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, list)
}

// HandleShare handles POST /api/resources/{id}/share. Sharing with the
// same target twice overwrites the earlier grant.
func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req shareRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	sharedBy, err := primitive.ObjectIDFromHex(req.SharedBy)
	if err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed sharedBy")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	grant, err := h.Eng.ShareResource(ctx, id, models.ShareType(req.ShareType), req.TargetID, sharedBy, req.Permissions)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, grant)
}

// HandleUnshare handles DELETE /api/resources/{id}/share. Removing a
// grant that does not exist still returns 204.
func (h *Handler) HandleUnshare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req shareRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Eng.UnshareResource(ctx, id, models.ShareType(req.ShareType), req.TargetID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
