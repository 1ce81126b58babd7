package errors

import (
	"net/http"

	"github.com/dalemusser/bloodconnect/internal/app/system/inputval"
	"github.com/go-chi/render"
)

// DecodeAndValidate reads the JSON body into v and runs its validator tags.
// On failure it writes the 400 reply itself and returns false.
func (e *ErrorLogger) DecodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		e.LogBadRequest(w, r, "decode body failed", err, "Invalid JSON body.")
		return false
	}
	if res := inputval.Validate(v); res.HasErrors() {
		e.Invalid(w, r, res)
		return false
	}
	return true
}
