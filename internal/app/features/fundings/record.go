package fundings

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	fundingstore "github.com/dalemusser/bloodconnect/internal/app/store/fundings"
	"github.com/dalemusser/bloodconnect/internal/app/system/metrics"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/app/system/payments"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"go.uber.org/zap"
)

type recordRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
	Amount    int64  `json:"amount" validate:"min=0"`
	Name      string `json:"name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// Record handles POST /fundings. With a gateway the session must be paid and
// its amount and email win over the body; without one the body must carry
// a positive amount and an email.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var in recordRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "record funding")
	defer cancel()

	f := models.Funding{SessionID: in.SessionID, Amount: in.Amount, Name: in.Name, Email: in.Email}

	if h.Gateway != nil {
		s, err := h.Gateway.VerifySession(ctx, in.SessionID)
		switch {
		case errors.Is(err, payments.ErrUnknownSession):
			uierrors.Message(w, r, http.StatusNotFound, "Checkout session not found")
			return
		case errors.Is(err, payments.ErrNotPaid):
			uierrors.Message(w, r, http.StatusBadRequest, "Payment has not been completed")
			return
		case err != nil:
			h.ErrLog.LogServerError(w, r, "verify checkout session failed", err)
			return
		}
		f.Amount = s.Amount
		if s.Email != "" {
			f.Email = s.Email
		}
		if f.Name == "" {
			f.Name = s.Name
		}
	}

	if f.Amount < 1 {
		uierrors.Message(w, r, http.StatusBadRequest, "amount must be at least 1")
		return
	}
	if f.Email == "" {
		uierrors.Message(w, r, http.StatusBadRequest, "email is required")
		return
	}

	saved, err := fundingstore.New(h.DB).Insert(ctx, f)
	if errors.Is(err, fundingstore.ErrDuplicateSession) {
		uierrors.Message(w, r, http.StatusConflict, "Funding for this session was already recorded")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert funding failed", err)
		return
	}

	metrics.FundingsRecordedTotal.Inc()
	metrics.FundingAmountTotal.Add(float64(saved.Amount))
	h.Log.Info("funding recorded", zap.String("session", saved.SessionID), zap.Int64("amount", saved.Amount))
	h.AuditLog.FundingRecorded(r, saved.Email, saved.SessionID, saved.Amount)
	uierrors.JSON(w, r, http.StatusCreated, map[string]string{
		"message":    "Funding recorded",
		"insertedId": saved.ID.Hex(),
	})
}

// List handles GET /fundings?page=&limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list fundings")
	defer cancel()

	rows, total, err := fundingstore.New(h.DB).List(ctx, paging.Parse(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list fundings failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, paging.Page[models.Funding]{Data: rows, Total: total})
}

// Total handles GET /fundings/total.
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "total fundings")
	defer cancel()

	total, err := fundingstore.New(h.DB).Total(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "total fundings failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, map[string]int64{"total": total})
}
