package donors_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/bloodconnect/internal/app/features/donors"
	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/dalemusser/bloodconnect/internal/testutil"
	"go.uber.org/zap"
)

func TestSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDonor(ctx, "Rafi", "rafi@x.com", "AB+", "Dhaka", "Savar")
	fixtures.CreateDonor(ctx, "Nila", "nila@x.com", "AB+", "Khulna", "Dumuria")
	fixtures.CreateBlockedUser(ctx, "Blocked", "blocked@x.com")

	logger := zap.NewNop()
	h := donors.NewHandler(db, uierrors.NewErrorLogger(logger), logger)

	q := url.Values{"bloodGroup": {"AB+"}, "district": {"Dhaka"}}
	rec := httptest.NewRecorder()
	donors.Routes(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?"+q.Encode(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var got []models.User
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].Email != "rafi@x.com" {
		t.Errorf("unexpected donors: %+v", got)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := donors.NewHandler(db, uierrors.NewErrorLogger(logger), logger)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/donors/search?bloodGroup=O-", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestSearch_UnencodedPlus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDonor(ctx, "Rafi", "rafi@x.com", "A+", "Dhaka", "Savar")
	fixtures.CreateDonor(ctx, "Mita", "mita@x.com", "A-", "Dhaka", "Savar")

	logger := zap.NewNop()
	h := donors.NewHandler(db, uierrors.NewErrorLogger(logger), logger)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/donors/search?bloodGroup=A+", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var got []models.User
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].Email != "rafi@x.com" {
		t.Errorf("unexpected donors: %+v", got)
	}
}

func TestSearch_InvalidBloodGroup(t *testing.T) {
	logger := zap.NewNop()
	h := donors.NewHandler(nil, uierrors.NewErrorLogger(logger), logger)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/donors/search?bloodGroup=Q", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
