package admin

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ListRequests handles GET /admin/requests/all?page=&limit=&status=.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list all requests")
	defer cancel()

	page, err := h.Manager.ListAll(ctx, paging.Parse(r), query.Get(r, "status"))
	if err != nil {
		h.ErrLog.Respond(w, r, "list all requests failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, page)
}
