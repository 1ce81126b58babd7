package errors_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/app/system/apperr"
	"github.com/dalemusser/bloodconnect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespond_KnownKinds(t *testing.T) {
	errLog := uierrors.NewErrorLogger(zap.NewNop())

	tests := []struct {
		err  error
		code int
	}{
		{apperr.InvalidInput("bad id"), http.StatusBadRequest},
		{apperr.Forbidden("blocked"), http.StatusForbidden},
		{apperr.NotFound("no such request"), http.StatusNotFound},
		{apperr.Conflict("already claimed"), http.StatusConflict},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		errLog.Respond(rec, httptest.NewRequest(http.MethodGet, "/", nil), "op", tt.err)

		assert.Equal(t, tt.code, rec.Code)
		var body map[string]any
		testutil.DecodeJSON(t, rec, &body)
		assert.Equal(t, tt.err.Error(), body["message"])
	}
}

func TestRespond_UnknownIsLoggedAndHidden(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	errLog := uierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	errLog.Respond(rec, httptest.NewRequest(http.MethodGet, "/requests", nil), "list failed", stderrors.New("socket closed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "socket closed")
	assert.Contains(t, rec.Body.String(), uierrors.ServerErrorMessage)
	if assert.Equal(t, 1, logs.Len()) {
		assert.Equal(t, "list failed", logs.All()[0].Message)
	}
}

func TestDecodeAndValidate(t *testing.T) {
	errLog := uierrors.NewErrorLogger(zap.NewNop())

	type body struct {
		Email  string `json:"email" validate:"required,email"`
		Amount int64  `json:"amount" validate:"min=1"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","amount":0}`))
	var b body
	assert.False(t, errLog.DecodeAndValidate(rec, req, &b))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Message string   `json:"message"`
		Fields  []string `json:"fields"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	assert.Equal(t, []string{"email", "amount"}, resp.Fields)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	assert.False(t, errLog.DecodeAndValidate(rec, req, &b))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","amount":5}`))
	assert.True(t, errLog.DecodeAndValidate(rec, req, &b))
	assert.Equal(t, int64(5), b.Amount)
}
