// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON response helpers the feature
// handlers share, including the mapping from engine errors to HTTP
// status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sharehub/sharehub/internal/app/engine"
	"go.uber.org/zap"
)

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Page is the JSON envelope for a cursor-paged list. Cursors are only
// present when the corresponding page exists.
type Page[T any] struct {
	Items      []T    `json:"items"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
	PrevCursor string `json:"prevCursor,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// errorBody is the JSON structure for every error response.
type errorBody struct {
	Error string `json:"error"`
}

// RespondError writes an error response with an explicit status code.
func RespondError(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, errorBody{Error: msg})
}

// Error maps err onto the HTTP status its engine sentinel implies and
// writes the JSON error body. Unrecognized errors become a 500 with a
// generic message so internals never leak to clients; the real error
// goes to the log.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrValidation):
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrConflict):
		RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrStoreUnavailable):
		log.Error("store unavailable", zap.Error(err))
		RespondError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		log.Error("unhandled error", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "internal error")
	}
}

// Decode reads the request body into v. A malformed body is reported
// as-is so the handler can turn it into a 400.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
