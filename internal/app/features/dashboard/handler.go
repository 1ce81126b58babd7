// Package dashboard serves the read-only reporting counters for the admin
// and volunteer dashboards.
package dashboard

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	metricsstore "github.com/dalemusser/bloodconnect/internal/app/store/metrics"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Loc *time.Location // decides where "today" begins
	Log *zap.Logger

	now func() time.Time
}

func NewHandler(db *mongo.Database, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{DB: db, Loc: loc, Log: logger, now: time.Now}
}

// ServeStats handles GET /admin/dashboard-stats and /volunteer/dashboard-stats.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard stats")
	defer cancel()

	uierrors.JSON(w, r, http.StatusOK, metricsstore.FetchDashboardCounts(ctx, h.DB, h.Log))
}

// ServeDonationStats handles GET /admin/donation-stats.
func (h *Handler) ServeDonationStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "donation stats")
	defer cancel()

	uierrors.JSON(w, r, http.StatusOK, metricsstore.FetchDonationCounts(ctx, h.DB, h.now(), h.Loc, h.Log))
}
