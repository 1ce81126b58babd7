package dashboard

import "github.com/go-chi/chi/v5"

// MountAdminRoutes registers the admin counters on the /admin subrouter.
func MountAdminRoutes(r chi.Router, h *Handler) {
	r.Get("/dashboard-stats", h.ServeStats)
	r.Get("/donation-stats", h.ServeDonationStats)
}

// AdminRoutes returns a standalone router with the admin counters.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	MountAdminRoutes(r, h)
	return r
}

// VolunteerRoutes is mounted under /volunteer.
func VolunteerRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard-stats", h.ServeStats)
	return r
}
