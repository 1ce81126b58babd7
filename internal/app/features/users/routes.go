package users

import "github.com/go-chi/chi/v5"

// Routes is mounted under /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Get("/role/{email}", h.GetRole)
	r.Get("/{email}/role", h.GetRole)
	r.Get("/{email}", h.GetUser)
	r.Patch("/{email}", h.UpdateProfile)
	return r
}
