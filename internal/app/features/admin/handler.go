// Package admin serves the administrative user and request listings and
// the user status and role switches, plus the audit trail.
package admin

import (
	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/lifecycle"
	"github.com/dalemusser/bloodconnect/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Manager  *lifecycle.Manager
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, m *lifecycle.Manager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Manager: m, ErrLog: errLog, AuditLog: audit, Log: logger}
}
