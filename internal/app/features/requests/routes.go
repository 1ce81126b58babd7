package requests

import "github.com/go-chi/chi/v5"

// Routes is mounted under /requests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/recent", h.Recent)
	r.Get("/all", h.ListMine)
	r.Patch("/status/{id}", h.UpdateStatus)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
