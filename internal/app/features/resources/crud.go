// internal/app/features/resources/crud.go
package resources

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	resourcestore "github.com/sharehub/sharehub/internal/app/store/resources"
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

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed resource id")
		return primitive.NilObjectID, false
	}
	return id, true
}

type resourceRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
}

// HandleCreate handles POST /api/resources.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	name := sanitize.Text(req.Name)
	if !inputval.IsValidName(name) {
		httpjson.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	typ := sanitize.Text(req.Type)
	if typ != "" && !models.IsValidResourceType(typ) {
		httpjson.RespondError(w, http.StatusBadRequest, "unknown resource type")
		return
	}
	ownerID, err := primitive.ObjectIDFromHex(req.OwnerID)
	if err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed ownerId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Resources.Create(ctx, models.Resource{
		OwnerID:     ownerID,
		Type:        typ,
		Name:        name,
		Description: sanitize.Text(req.Description),
	})
	if err != nil {
		if errors.Is(err, resourcestore.ErrInvalidResource) {
			httpjson.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("create resource", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusCreated, created)
}

// HandleList handles GET /api/resources. Pages are addressed by the
// before/after cursor query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	before, after := paging.ParseCursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, page, prev, next, err := h.Resources.ListPage(ctx, before, after)
	if err != nil {
		h.Log.Error("list resources", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []models.Resource{}
	}

	resp := httpjson.Page[models.Resource]{Items: list, HasPrev: page.HasPrev, HasNext: page.HasNext}
	if page.HasPrev {
		resp.PrevCursor = prev
	}
	if page.HasNext {
		resp.NextCursor = next
	}
	httpjson.Respond(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/resources/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Resources.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	if err != nil {
		h.Log.Error("get resource", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusOK, res)
}

// HandleUpdate handles PUT /api/resources/{id}. OwnerID is immutable;
// only name, type, and description can change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req resourceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	name := sanitize.Text(req.Name)
	if !inputval.IsValidName(name) {
		httpjson.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	typ := sanitize.Text(req.Type)
	if typ != "" && !models.IsValidResourceType(typ) {
		httpjson.RespondError(w, http.StatusBadRequest, "unknown resource type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Resources.UpdateInfo(ctx, id, name, typ, sanitize.Text(req.Description))
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	if err != nil {
		h.Log.Error("update resource", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	res, err := h.Resources.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload resource after update", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusOK, res)
}

// HandleDelete handles DELETE /api/resources/{id}. Every grant on the
// resource cascades with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Resources.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete resource", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		httpjson.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
