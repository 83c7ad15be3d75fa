// internal/app/features/resources/routes.go
package resources

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// CRUD
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	// FORWARD RESOLUTION (resource → users)
	r.Get("/{id}/access", h.HandleAccess)

	// SHARING
	r.Post("/{id}/share", h.HandleShare)
	r.Delete("/{id}/share", h.HandleUnshare)

	return r
}
