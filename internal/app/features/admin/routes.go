package admin

import "github.com/go-chi/chi/v5"

// MountRoutes registers the admin endpoints on r, which is the /admin
// subrouter shared with the dashboard counters.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/requests/all", h.ListRequests)
	r.Get("/users", h.ListUsers)
	r.Patch("/users/status/{email}", h.SetStatus)
	r.Patch("/users/role/{email}", h.SetRole)
	r.Get("/audit-log", h.ListAudit)
}

// Routes returns a standalone router with the admin endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	MountRoutes(r, h)
	return r
}
