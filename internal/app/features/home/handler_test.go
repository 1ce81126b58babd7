package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/bloodconnect/internal/app/features/home"
	"github.com/dalemusser/bloodconnect/internal/testutil"
)

func TestServeRoot(t *testing.T) {
	h := home.NewHandler()

	rec := httptest.NewRecorder()
	home.Routes(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	testutil.DecodeJSON(t, rec, &body)
	if body["message"] != home.Greeting {
		t.Errorf("message: got %q", body["message"])
	}
}
