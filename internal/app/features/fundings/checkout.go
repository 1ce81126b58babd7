package fundings

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/system/payments"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type checkoutRequest struct {
	Amount int64  `json:"amount" validate:"min=1"`
	Name   string `json:"name" validate:"max=100"`
	Email  string `json:"email" validate:"required,email"`
}

// CreateCheckout handles POST /create-checkout-session.
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	if h.Gateway == nil {
		uierrors.Message(w, r, http.StatusServiceUnavailable, "Payments are not configured")
		return
	}

	var in checkoutRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create checkout session")
	defer cancel()

	co, err := h.Gateway.CreateCheckout(ctx, payments.CheckoutInput{Amount: in.Amount, Name: in.Name, Email: in.Email})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create checkout session failed", err)
		return
	}

	h.Log.Info("checkout session created", zap.String("session", co.ID), zap.Int64("amount", in.Amount))
	uierrors.JSON(w, r, http.StatusOK, co)
}
