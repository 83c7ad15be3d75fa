// internal/app/features/users/crud.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/sharehub/sharehub/internal/app/store/users"
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

// pathID parses the {id} route parameter. A malformed id writes a 400
// and returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed user id")
		return primitive.NilObjectID, false
	}
	return id, true
}

type userRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func (req *userRequest) clean() (email, fullName string, ok bool) {
	email = sanitize.Text(req.Email)
	fullName = sanitize.Text(req.FullName)
	return email, fullName, inputval.IsValidEmail(email) && inputval.IsValidName(fullName)
}

// HandleCreate handles POST /api/users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	email, fullName, ok := req.clean()
	if !ok {
		httpjson.RespondError(w, http.StatusBadRequest, "email and fullName are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{Email: email, FullName: fullName})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.RespondError(w, http.StatusConflict, "a user with that email already exists")
			return
		}
		h.Log.Error("create user", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusCreated, created)
}

// HandleList handles GET /api/users. Pages are addressed by the
// before/after cursor query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	before, after := paging.ParseCursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, page, prev, next, err := h.Users.ListPage(ctx, before, after)
	if err != nil {
		h.Log.Error("list users", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []models.User{}
	}

	resp := httpjson.Page[models.User]{Items: list, HasPrev: page.HasPrev, HasNext: page.HasNext}
	if page.HasPrev {
		resp.PrevCursor = prev
	}
	if page.HasNext {
		resp.NextCursor = next
	}
	httpjson.Respond(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("get user", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusOK, u)
}

// HandleUpdate handles PUT /api/users/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req userRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.RespondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	email, fullName, okReq := req.clean()
	if !okReq {
		httpjson.RespondError(w, http.StatusBadRequest, "email and fullName are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.UpdateInfo(ctx, id, email, fullName)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.RespondError(w, http.StatusNotFound, "user not found")
		return
	case errors.Is(err, userstore.ErrDuplicateEmail):
		httpjson.RespondError(w, http.StatusConflict, "a user with that email already exists")
		return
	case err != nil:
		h.Log.Error("update user", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload user after update", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Respond(w, http.StatusOK, u)
}

// HandleDelete handles DELETE /api/users/{id}. Deleting a user also
// removes their memberships and direct grants; group and global grants
// they created stay behind.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete user", zap.Error(err))
		httpjson.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		httpjson.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
