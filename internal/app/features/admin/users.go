package admin

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	userstore "github.com/dalemusser/bloodconnect/internal/app/store/users"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ListUsers handles GET /admin/users?page=&limit=&status=.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	status := normalize.Status(query.Get(r, "status"))
	if status != "" && !models.IsValidUserStatus(status) {
		uierrors.Message(w, r, http.StatusBadRequest, "status must be active or blocked")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	users, total, err := userstore.New(h.DB).List(ctx, status, paging.Parse(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, paging.Page[models.User]{Data: users, Total: total})
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

// SetStatus handles PATCH /admin/users/status/{email}.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}
	email := normalize.EmailParam(chi.URLParam(r, "email"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "set user status")
	defer cancel()

	err := userstore.New(h.DB).SetStatus(ctx, email, in.Status)
	if !h.reportWrite(w, r, "set user status failed", err) {
		return
	}
	h.Log.Info("user status changed", zap.String("email", email), zap.String("status", in.Status))
	h.AuditLog.UserStatusChanged(r, email, in.Status)
	uierrors.Message(w, r, http.StatusOK, "User status updated")
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=donor volunteer admin"`
}

// SetRole handles PATCH /admin/users/role/{email}.
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	var in roleRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}
	email := normalize.EmailParam(chi.URLParam(r, "email"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "set user role")
	defer cancel()

	err := userstore.New(h.DB).SetRole(ctx, email, in.Role)
	if !h.reportWrite(w, r, "set user role failed", err) {
		return
	}
	h.Log.Info("user role changed", zap.String("email", email), zap.String("role", in.Role))
	h.AuditLog.UserRoleChanged(r, email, in.Role)
	uierrors.Message(w, r, http.StatusOK, "User role updated")
}

// reportWrite writes the failure reply for err and returns false, or
// returns true when err is nil.
func (h *Handler) reportWrite(w http.ResponseWriter, r *http.Request, op string, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.Message(w, r, http.StatusNotFound, "User not found")
	default:
		h.ErrLog.LogServerError(w, r, op, err)
	}
	return false
}
