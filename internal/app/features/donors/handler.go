// Package donors serves the public donor search.
package donors

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	userstore "github.com/dalemusser/bloodconnect/internal/app/store/users"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, ErrLog: errLog, Log: logger}
}

// Routes is mounted under /donors.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/search", h.Search)
	return r
}

// Search handles GET /donors/search?bloodGroup=&district=&upazila=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	// raw value: a trailing space is an unencoded "+"
	bg := normalize.BloodGroupParam(r.URL.Query().Get("bloodGroup"))
	if bg != "" && !models.IsValidBloodGroup(bg) {
		uierrors.Message(w, r, http.StatusBadRequest, "bloodGroup must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "search donors")
	defer cancel()

	donors, err := userstore.New(h.DB).SearchDonors(ctx, userstore.DonorFilter{
		BloodGroup: bg,
		District:   query.Get(r, "district"),
		Upazila:    query.Get(r, "upazila"),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "search donors failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, donors)
}
