package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/bloodconnect/internal/app/store/audit"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := audit.New(db)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Log(ctx, audit.Event{
		Timestamp: base, Category: audit.CategoryAccount,
		EventType: audit.EventUserRegistered, Subject: "a@example.com",
	}))
	require.NoError(t, s.Log(ctx, audit.Event{
		Timestamp: base.Add(time.Hour), Category: audit.CategoryAdmin,
		EventType: audit.EventUserRoleChanged, Subject: "a@example.com",
		Details: map[string]string{"role": "volunteer"},
	}))
	require.NoError(t, s.Log(ctx, audit.Event{
		Category: audit.CategoryAdmin, EventType: audit.EventUserStatusChanged, Subject: "b@example.com",
	}))

	all, total, err := s.List(ctx, audit.Filter{}, paging.Default())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	// zero timestamp was filled with now, so it sorts first
	assert.Equal(t, "b@example.com", all[0].Subject)
	assert.False(t, all[0].Timestamp.IsZero())

	mine, total, err := s.List(ctx, audit.Filter{Subject: "a@example.com"}, paging.New(1, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, mine, 1)
	assert.Equal(t, audit.EventUserRoleChanged, mine[0].EventType)
	assert.Equal(t, "volunteer", mine[0].Details["role"])

	admin, _, err := s.List(ctx, audit.Filter{Category: audit.CategoryAdmin, EventType: audit.EventUserStatusChanged}, paging.Default())
	require.NoError(t, err)
	require.Len(t, admin, 1)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	events, total, err := audit.New(db).List(ctx, audit.Filter{Category: "none"}, paging.Default())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, events)
}
