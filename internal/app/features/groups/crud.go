// internal/app/features/groups/crud.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/sharehub/sharehub/internal/app/store/groups"
	"github.com/sharehub/sharehub/internal/app/system/httpjson"
	"github.com/sharehub/sharehub/internal/app/system/inputval"
	"github.com/sharehub/sharehub/internal/app/system/paging"
	"github.com/sharehub/sharehub/internal/app/system/sanitize"
	"github.com/sharehub/sharehub/internal/app/system/timeouts"
	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func pathOID(w http.ResponseWriter, r *http.Request, name, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed "+what+" id")
		return primitive.NilObjectID, false
	}
	return id, true
}

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *groupRequest) clean() (name, desc string, ok bool) {
	name = sanitize.Text(req.Name)
	desc = sanitize.Text(req.Description)
	return name, desc, inputval.IsValidName(name)
}

// HandleCreate handles POST /api/groups.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	name, desc, ok := req.clean()
	if !ok {
		httpjson.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Groups.Create(ctx, models.Group{Name: name, Description: desc})
	if err != nil {
		if errors.Is(err, groupstore.ErrDuplicateGroupName) {
			httpjson.RespondError(w, http.StatusConflict, "a group with that name already exists")
			return
		}
		h.Log.Error("create group", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusCreated, created)
}

// HandleList handles GET /api/groups. Pages are addressed by the
// before/after cursor query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	before, after := paging.ParseCursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, page, prev, next, err := h.Groups.ListPage(ctx, before, after)
	if err != nil {
		h.Log.Error("list groups", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []models.Group{}
	}

	resp := httpjson.Page[models.Group]{Items: list, HasPrev: page.HasPrev, HasNext: page.HasNext}
	if page.HasPrev {
		resp.PrevCursor = prev
	}
	if page.HasNext {
		resp.NextCursor = next
	}
	httpjson.Respond(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/groups/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathOID(w, r, "id", "group")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.RespondError(w, http.StatusNotFound, "group not found")
		return
	}
	if err != nil {
		h.Log.Error("get group", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusOK, g)
}

// HandleUpdate handles PUT /api/groups/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathOID(w, r, "id", "group")
	if !ok {
		return
	}
	var req groupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	name, desc, okReq := req.clean()
	if !okReq {
		httpjson.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Groups.UpdateInfo(ctx, id, name, desc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.RespondError(w, http.StatusNotFound, "group not found")
		return
	case errors.Is(err, groupstore.ErrDuplicateGroupName):
		httpjson.RespondError(w, http.StatusConflict, "a group with that name already exists")
		return
	case err != nil:
		h.Log.Error("update group", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload group after update", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusOK, g)
}

// HandleDelete handles DELETE /api/groups/{id}. Memberships and
// group-targeted grants cascade with the group.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathOID(w, r, "id", "group")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Groups.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete group", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		httpjson.RespondError(w, http.StatusNotFound, "group not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
