package lifecycle_test

import (
	"context"
	"testing"

	"github.com/dalemusser/bloodconnect/internal/app/lifecycle"
	"github.com/dalemusser/bloodconnect/internal/app/system/apperr"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		district, upazila, want string
	}{
		{"Dhaka", "Savar", "Dhaka, Savar"},
		{"Dhaka", "", "Dhaka"},
		{"", "Savar", "Savar"},
		{"", "", lifecycle.NotProvided},
		{"  ", " ", lifecycle.NotProvided},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lifecycle.Location(tt.district, tt.upazila), "%q/%q", tt.district, tt.upazila)
	}
}

func TestListByRequester_Pagination(t *testing.T) {
	m, _, _ := setup(donor1)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		c := fullContent()
		c.PatientName = name
		id, err := m.CreateRequest(ctx, "donor1@x.com", c)
		require.NoError(t, err)
		ids = append(ids, id.Hex())
	}

	page, err := m.ListByRequester(ctx, "donor1@x.com", paging.New(2, 1), "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, ids[1], page.Data[0].ID, "page 2 of size 1 is the second most recent")
	assert.Equal(t, "second", page.Data[0].RecipientName)
}

func TestListByRequester_Sentinels(t *testing.T) {
	m, _, reqs := setup(donor1)
	reqs.Put(models.BloodRequest{RequesterEmail: "donor1@x.com", RequesterName: "Donor One"})

	page, err := m.ListByRequester(context.Background(), "donor1@x.com", paging.Default(), "")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	v := page.Data[0]
	assert.Equal(t, lifecycle.NotProvided, v.RecipientLocation)
	assert.Equal(t, lifecycle.NotProvided, v.RecipientName)
	assert.Equal(t, lifecycle.NotProvided, v.BloodGroup)
	assert.Equal(t, lifecycle.NotProvided, v.DonationDate)
	assert.Equal(t, lifecycle.NotProvided, v.DonationTime)
	assert.Equal(t, models.StatusPending, v.Status, "missing status shows as pending")
	assert.Equal(t, "Donor One", v.DonorName, "pending requests show the requester as donor")
	assert.Equal(t, "donor1@x.com", v.DonorEmail)
}

func TestListByRequester_DonorResolution(t *testing.T) {
	live := models.User{Name: "Live Name", Email: "live@x.com", Status: models.UserActive}
	m, users, reqs := setup(donor1, live)
	ctx := context.Background()

	base := models.BloodRequest{RequesterEmail: "donor1@x.com", RequesterName: "Donor One", RequestContent: fullContent()}

	liveReq := base
	liveReq.Status = models.StatusInProgress
	liveReq.DonorEmail = "live@x.com"
	liveReq.DonorName = "Captured Live"
	reqs.Put(liveReq)

	gone := base
	gone.Status = models.StatusInProgress
	gone.DonorEmail = "gone@x.com"
	gone.DonorName = "Captured Gone"
	reqs.Put(gone)

	failing := base
	failing.Status = models.StatusInProgress
	failing.DonorEmail = "flaky@x.com"
	failing.DonorName = "Captured Flaky"
	reqs.Put(failing)
	users.Fail("flaky@x.com", errBoom)

	page, err := m.ListByRequester(ctx, "donor1@x.com", paging.Default(), "")
	require.NoError(t, err, "a failing donor lookup must not abort the list")
	require.Len(t, page.Data, 3)

	// Newest first: failing, gone, live.
	assert.Equal(t, "Captured Flaky", page.Data[0].DonorName)
	assert.Equal(t, "flaky@x.com", page.Data[0].DonorEmail)
	assert.Equal(t, "Captured Gone", page.Data[1].DonorName)
	assert.Equal(t, "gone@x.com", page.Data[1].DonorEmail)
	assert.Equal(t, "Live Name", page.Data[2].DonorName)
	assert.Equal(t, "live@x.com", page.Data[2].DonorEmail)
	assert.Equal(t, "Dhaka, Savar", page.Data[2].RecipientLocation)
}

func TestListByRequester_LookupsAreMemoized(t *testing.T) {
	live := models.User{Name: "Live", Email: "live@x.com"}
	m, users, reqs := setup(donor1, live)
	for i := 0; i < 3; i++ {
		reqs.Put(models.BloodRequest{
			RequesterEmail: "donor1@x.com",
			RequesterName:  "Donor One",
			Status:         models.StatusInProgress,
			DonorEmail:     "live@x.com",
		})
	}

	_, err := m.ListByRequester(context.Background(), "donor1@x.com", paging.Default(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, users.Calls("live@x.com"))
}

func TestListByRequester_StatusFilter(t *testing.T) {
	m, _, _ := setup(donor1)
	ctx := context.Background()
	a, _ := m.CreateRequest(ctx, "donor1@x.com", fullContent())
	_, _ = m.CreateRequest(ctx, "donor1@x.com", fullContent())
	require.NoError(t, m.TransitionStatus(ctx, a.Hex(), lifecycle.Transition{Status: "inprogress", DonorEmail: "d@x.com"}))

	page, err := m.ListByRequester(ctx, "donor1@x.com", paging.Default(), "InProgress")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = m.ListByRequester(ctx, "donor1@x.com", paging.Default(), "bogus")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = m.ListByRequester(ctx, "", paging.Default(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestListRecent(t *testing.T) {
	m, _, _ := setup(donor1)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := m.CreateRequest(ctx, "donor1@x.com", fullContent())
		require.NoError(t, err)
	}

	recent, err := m.ListRecent(ctx, "donor1@x.com")
	require.NoError(t, err)
	assert.Len(t, recent, lifecycle.RecentLimit)
}

func TestListAll(t *testing.T) {
	donor2 := models.User{Name: "Donor Two", Email: "donor2@x.com", Status: models.UserActive}
	m, _, reqs := setup(donor1, donor2)
	ctx := context.Background()

	a, _ := m.CreateRequest(ctx, "donor1@x.com", fullContent())
	_, _ = m.CreateRequest(ctx, "donor2@x.com", fullContent())
	require.NoError(t, m.TransitionStatus(ctx, a.Hex(), lifecycle.Transition{Status: "inprogress", DonorEmail: "donor2@x.com"}))

	page, err := m.ListAll(ctx, paging.Default(), "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Data, 2)

	assert.Equal(t, "donor2@x.com", page.Data[0].RequesterEmail)
	assert.Empty(t, page.Data[0].DonorEmail, "admin view shows stored donor fields only")
	assert.Equal(t, "donor1@x.com", page.Data[1].RequesterEmail)
	assert.Equal(t, "Donor One", page.Data[1].RequesterName)
	assert.Equal(t, "donor2@x.com", page.Data[1].DonorEmail)

	reqs.FailList(errBoom)
	_, err = m.ListAll(ctx, paging.Default(), "")
	assert.ErrorIs(t, err, errBoom)
}
