package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"selected-for-demo", StatusSelectedForDemo, false},
		{" Selected-For-Demo ", "", true},
		{" COMPLETED ", "", true},
		{"Pending", "", true},
		{"Confirmed", "", true},
		{"confirmed", StatusConfirmedFeePending, false},
		{"confirmed-fee-pending", StatusConfirmedFeePending, false},
		{"withdrawn", StatusWithdrawn, false},
		{"not-a-real-status", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				assert.True(t, httperr.IsBusiness(err, "invalid_status"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusSelectedForDemo},
		{StatusPending, StatusConfirmedFeePending},
		{StatusPending, StatusWithdrawn},
		{StatusSelectedForDemo, StatusConfirmedFeePending},
		{StatusConfirmedFeePending, StatusCompleted},
		{StatusConfirmedFeePending, StatusRejected},
	}
	for _, pair := range allowed {
		assert.NoError(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	forbidden := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusPending},
		{StatusRejected, StatusSelectedForDemo},
		{StatusWithdrawn, StatusPending},
		{StatusConfirmedFeePending, StatusSelectedForDemo},
	}
	for _, pair := range forbidden {
		err := CanTransition(pair[0], pair[1])
		assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"), "%s -> %s", pair[0], pair[1])
	}
}

func TestFinalStatuses(t *testing.T) {
	assert.True(t, StatusCompleted.IsFinal())
	assert.True(t, StatusRejected.IsFinal())
	assert.True(t, StatusWithdrawn.IsFinal())
	assert.False(t, StatusPending.IsFinal())
	assert.Empty(t, AllowedTargets(StatusCompleted))
	assert.Len(t, AllowedTargets("confirmed"), 3)
}

func TestTransitionStampsOnce(t *testing.T) {
	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	ap := &models.Application{Status: string(StatusPending)}

	changed, err := Transition(ap, StatusSelectedForDemo, first)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, ap.ConfirmedAt)
	assert.Equal(t, first, *ap.ConfirmedAt)

	changed, err = Transition(ap, StatusConfirmedFeePending, later)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, first, *ap.ConfirmedAt)

	changed, err = Transition(ap, StatusConfirmedFeePending, later.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, *ap.ConfirmedAt)

	changed, err = Transition(ap, StatusCompleted, later)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, later, *ap.CompletedAt)
	assert.Nil(t, ap.RejectedAt)
}

func TestTransitionRejectsBackward(t *testing.T) {
	now := time.Now()
	ap := &models.Application{Status: string(StatusCompleted), CompletedAt: &now}

	changed, err := Transition(ap, StatusPending, now)
	assert.False(t, changed)
	assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"))
	assert.Equal(t, string(StatusCompleted), ap.Status)
}

func TestTransitionFromLegacyStoredStatus(t *testing.T) {
	ap := &models.Application{Status: "confirmed"}

	changed, err := Transition(ap, StatusConfirmedFeePending, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = Transition(ap, StatusCompleted, time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestMarkGuardianContactSent(t *testing.T) {
	first := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	ap := &models.Application{}

	MarkGuardianContactSent(ap, true, first)
	MarkGuardianContactSent(ap, true, first.Add(time.Hour))

	assert.True(t, ap.GuardianContactSent)
	assert.Equal(t, first, *ap.GuardianContactSentAt)

	MarkGuardianContactSent(ap, false, first)
	assert.False(t, ap.GuardianContactSent)
}
