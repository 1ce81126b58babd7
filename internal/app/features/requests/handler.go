// Package requests serves the blood request lifecycle to requesters and donors.
package requests

import (
	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/lifecycle"
	"github.com/dalemusser/bloodconnect/internal/app/system/auditlog"
	"go.uber.org/zap"
)

type Handler struct {
	Manager  *lifecycle.Manager
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(m *lifecycle.Manager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Manager: m, ErrLog: errLog, AuditLog: audit, Log: logger}
}
