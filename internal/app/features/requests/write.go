package requests

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/lifecycle"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// createRequest is the POST body: the owner plus the content fields at the
// top level. Required fields are checked by the lifecycle manager so the
// reply can name all of them at once.
type createRequest struct {
	RequesterEmail string `json:"requesterEmail"`
	models.RequestContent
}

// Create handles POST /requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createRequest
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode request body failed", err, "Invalid JSON body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create request")
	defer cancel()

	id, err := h.Manager.CreateRequest(ctx, in.RequesterEmail, in.RequestContent)
	if err != nil {
		h.ErrLog.Respond(w, r, "create request failed", err)
		return
	}

	h.Log.Info("blood request created", zap.String("id", id.Hex()), zap.String("requester", in.RequesterEmail))
	uierrors.JSON(w, r, http.StatusCreated, map[string]string{
		"message":    "Request created",
		"insertedId": id.Hex(),
	})
}

// Update handles PUT /requests/{id}: a full replace of the content fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.RequestContent
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode request body failed", err, "Invalid JSON body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update request")
	defer cancel()

	if err := h.Manager.UpdateRequest(ctx, chi.URLParam(r, "id"), in); err != nil {
		h.ErrLog.Respond(w, r, "update request failed", err)
		return
	}
	uierrors.Message(w, r, http.StatusOK, "Request updated")
}

type statusRequest struct {
	Status     string `json:"status" validate:"required"`
	DonorEmail string `json:"donorEmail" validate:"omitempty,email"`
	DonorName  string `json:"donorName" validate:"max=100"`
}

// UpdateStatus handles PATCH /requests/status/{id}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "transition request")
	defer cancel()

	id := chi.URLParam(r, "id")
	err := h.Manager.TransitionStatus(ctx, id, lifecycle.Transition{
		Status:     in.Status,
		DonorEmail: in.DonorEmail,
		DonorName:  in.DonorName,
	})
	if err != nil {
		h.ErrLog.Respond(w, r, "transition request failed", err)
		return
	}

	h.Log.Info("blood request status updated", zap.String("id", id), zap.String("status", in.Status))
	uierrors.Message(w, r, http.StatusOK, "Status updated")
}

// Delete handles DELETE /requests/{id}. An unknown id deletes nothing.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete request")
	defer cancel()

	removed, err := h.Manager.DeleteRequest(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Respond(w, r, "delete request failed", err)
		return
	}
	var n int64
	if removed != nil {
		n = 1
		h.AuditLog.RequestDeleted(r, removed.RequesterEmail, removed.ID.Hex())
	}
	uierrors.JSON(w, r, http.StatusOK, map[string]int64{"deletedCount": n})
}
