package home

import (
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
)

// Greeting is the body served at /.
const Greeting = "Hello from BloodConnect backend!"

// Handler serves the root endpoint.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ServeRoot handles GET /.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	uierrors.Message(w, r, http.StatusOK, Greeting)
}
