package requests

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
)

// Get handles GET /requests/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get request")
	defer cancel()

	req, err := h.Manager.GetRequest(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Respond(w, r, "get request failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, req)
}

// Recent handles GET /requests/recent?email=.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "recent requests")
	defer cancel()

	views, err := h.Manager.ListRecent(ctx, query.Get(r, "email"))
	if err != nil {
		h.ErrLog.Respond(w, r, "list recent requests failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, views)
}

// ListMine handles GET /requests/all?email=&page=&limit=&status=.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list requests")
	defer cancel()

	page, err := h.Manager.ListByRequester(ctx, query.Get(r, "email"), paging.Parse(r), query.Get(r, "status"))
	if err != nil {
		h.ErrLog.Respond(w, r, "list requests failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, page)
}
