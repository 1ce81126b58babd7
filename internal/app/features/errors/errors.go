// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/bloodconnect/internal/app/system/apperr"
	"github.com/dalemusser/bloodconnect/internal/app/system/inputval"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// ServerErrorMessage is the only detail a client sees for an unexpected failure.
const ServerErrorMessage = "Server error"

// messageResponse is the body of every error reply.
type messageResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// ErrorLogger writes JSON error replies and logs the ones that are our fault.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Message writes {"message": msg} with the given status.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, messageResponse{Message: msg})
}

// LogServerError logs err with context and replies 500 with the generic message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	Message(w, r, http.StatusInternalServerError, ServerErrorMessage)
}

// LogBadRequest logs at debug and replies 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Debug(msg, zap.Error(err), zap.String("path", r.URL.Path))
	Message(w, r, http.StatusBadRequest, userMsg)
}

// Invalid replies 400 listing the fields that failed validation.
func (e *ErrorLogger) Invalid(w http.ResponseWriter, r *http.Request, res *inputval.Result) {
	JSON(w, r, http.StatusBadRequest, messageResponse{Message: res.All(), Fields: res.Fields()})
}

// Respond maps err onto a reply. Known kinds carry their own message;
// anything else is logged under op and reported as a generic 500.
func (e *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, op string, err error) {
	if !apperr.IsKnown(err) {
		e.LogServerError(w, r, op, err)
		return
	}
	Message(w, r, apperr.HTTPStatus(err), err.Error())
}
