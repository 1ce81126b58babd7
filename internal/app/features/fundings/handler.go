// Package fundings serves monetary donations: checkout session creation,
// recording confirmed payments, and the funding ledger.
package fundings

import (
	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/system/auditlog"
	"github.com/dalemusser/bloodconnect/internal/app/system/payments"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Gateway  payments.Gateway // nil when no payment key is configured
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, gw payments.Gateway, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Gateway: gw, ErrLog: errLog, AuditLog: audit, Log: logger}
}

// MountRoutes registers the funding endpoints on the root router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/create-checkout-session", h.CreateCheckout)
	r.Route("/fundings", func(r chi.Router) {
		r.Post("/", h.Record)
		r.Get("/", h.List)
		r.Get("/total", h.Total)
	})
}
