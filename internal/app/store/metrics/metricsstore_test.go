package metricsstore_test

import (
	"testing"
	"time"

	metricsstore "github.com/dalemusser/bloodconnect/internal/app/store/metrics"
	"github.com/dalemusser/bloodconnect/internal/testutil"
	"go.uber.org/zap"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, db, zap.NewNop())

	if counts != (metricsstore.Counts{}) {
		t.Errorf("expected all zero counts, got %+v", counts)
	}
}

func TestFetchDashboardCounts_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Admin", "admin@example.com", "admin")
	fixtures.CreateUser(ctx, "Donor", "donor@example.com", "donor")
	fixtures.CreateRequest(ctx, "donor@example.com", "P1", time.Now())
	fixtures.CreateRequest(ctx, "donor@example.com", "P2", time.Now())
	fixtures.CreateRequest(ctx, "donor@example.com", "P3", time.Now())
	fixtures.CreateFunding(ctx, "donor@example.com", 700, "cs_1", time.Now())
	fixtures.CreateFunding(ctx, "admin@example.com", 300, "cs_2", time.Now())

	counts := metricsstore.FetchDashboardCounts(ctx, db, zap.NewNop())

	if counts.TotalUsers != 2 {
		t.Errorf("TotalUsers: got %d, want 2", counts.TotalUsers)
	}
	if counts.TotalRequests != 3 {
		t.Errorf("TotalRequests: got %d, want 3", counts.TotalRequests)
	}
	if counts.TotalFunding != 1000 {
		t.Errorf("TotalFunding: got %d, want 1000", counts.TotalFunding)
	}
}

func TestWindows(t *testing.T) {
	loc := time.FixedZone("BST", 6*60*60)
	// Wednesday 15 Oct 2025, 14:30 local.
	now := time.Date(2025, 10, 15, 14, 30, 0, 0, loc)

	day, week, month := metricsstore.Windows(now, loc)

	if want := time.Date(2025, 10, 15, 0, 0, 0, 0, loc); !day.Equal(want) {
		t.Errorf("day: got %v, want %v", day, want)
	}
	if want := time.Date(2025, 10, 12, 0, 0, 0, 0, loc); !week.Equal(want) {
		t.Errorf("week: got %v, want %v", week, want)
	}
	if want := time.Date(2025, 10, 1, 0, 0, 0, 0, loc); !month.Equal(want) {
		t.Errorf("month: got %v, want %v", month, want)
	}
}

func TestWindows_Sunday(t *testing.T) {
	now := time.Date(2025, 10, 12, 9, 0, 0, 0, time.UTC)
	day, week, _ := metricsstore.Windows(now, time.UTC)
	if !day.Equal(week) {
		t.Errorf("on Sunday the week starts today: day=%v week=%v", day, week)
	}
}

func TestFetchDonationCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loc := time.UTC
	// Thursday 16 Oct 2025, noon.
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, loc)

	fixtures.CreateRequest(ctx, "r@example.com", "today", now.Add(-time.Hour))
	fixtures.CreateRequest(ctx, "r@example.com", "monday", time.Date(2025, 10, 13, 8, 0, 0, 0, loc))
	fixtures.CreateRequest(ctx, "r@example.com", "early month", time.Date(2025, 10, 2, 8, 0, 0, 0, loc))
	fixtures.CreateRequest(ctx, "r@example.com", "last month", time.Date(2025, 9, 28, 8, 0, 0, 0, loc))

	got := metricsstore.FetchDonationCounts(ctx, db, now, loc, zap.NewNop())

	want := metricsstore.DonationCounts{Daily: 1, Weekly: 2, Monthly: 3}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
