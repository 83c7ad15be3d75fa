// internal/app/features/groups/members.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"time"

	membershipstore "github.com/sharehub/sharehub/internal/app/store/memberships"
	"github.com/sharehub/sharehub/internal/app/system/httpjson"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// memberEntry is one row of GET /api/groups/{id}/members.
type memberEntry struct {
	UserID   primitive.ObjectID `json:"userId"`
	Email    string             `json:"email"`
	FullName string             `json:"fullName"`
	JoinedAt time.Time          `json:"joinedAt"`
}

// HandleListMembers handles GET /api/groups/{id}/members. Membership
// edges whose user no longer exists are skipped.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathOID(w, r, "id", "group")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Groups.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.RespondError(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("get group", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	edges, err := h.Memberships.ListByGroup(ctx, id)
	if err != nil {
		h.Log.Error("list group members", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	members := make([]memberEntry, 0, len(edges))
	for _, m := range edges {
		u, err := h.Users.GetByID(ctx, m.UserID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			h.Log.Error("load member", zap.Error(err))
			httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		members = append(members, memberEntry{
			UserID:   u.ID,
			Email:    u.Email,
			FullName: u.FullName,
			JoinedAt: m.JoinedAt,
		})
	}
	httpjson.Respond(w, http.StatusOK, members)
}

// HandleAddMember handles POST /api/groups/{id}/members/{userID}.
// Adding a user who is already a member is a 409.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathOID(w, r, "id", "group")
	if !ok {
		return
	}
	userID, ok := pathOID(w, r, "userID", "user")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Memberships.Add(ctx, groupID, userID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.RespondError(w, http.StatusNotFound, "group or user not found")
		return
	case errors.Is(err, membershipstore.ErrDuplicateMembership):
		httpjson.RespondError(w, http.StatusConflict, "user is already a member of this group")
		return
	case err != nil:
		h.Log.Error("add member", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusCreated, m)
}

// HandleRemoveMember handles DELETE /api/groups/{id}/members/{userID}.
// Removing an absent membership is a no-op 204.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathOID(w, r, "id", "group")
	if !ok {
		return
	}
	userID, ok := pathOID(w, r, "userID", "user")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Memberships.Remove(ctx, groupID, userID); err != nil {
		h.Log.Error("remove member", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
