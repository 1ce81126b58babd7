package admin

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/store/audit"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ListAudit handles GET /admin/audit-log?category=&event=&email=&page=&limit=.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	f := audit.Filter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event"),
		Subject:   normalize.Email(query.Get(r, "email")),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list audit events")
	defer cancel()

	events, total, err := audit.New(h.DB).List(ctx, f, paging.Parse(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list audit events failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, paging.Page[audit.Event]{Data: events, Total: total})
}
