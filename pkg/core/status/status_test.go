package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestCanTransition_CompletedIsTerminal(t *testing.T) {
	assert.True(t, CanTransition(model.StatusScheduled, model.StatusCompleted))

	for _, target := range []model.Status{
		model.StatusNew, model.StatusInProcess, model.StatusScheduled,
		model.StatusDeclined, model.StatusPostponed, model.StatusCompleted,
	} {
		assert.False(t, CanTransition(model.StatusCompleted, target), "completed -> %s must be rejected", target)
	}
}

func TestCanTransition_DeclineAndPostponeBeforeCompletion(t *testing.T) {
	for _, from := range []model.Status{model.StatusNew, model.StatusInProcess, model.StatusScheduled} {
		assert.True(t, CanTransition(from, model.StatusDeclined))
		assert.True(t, CanTransition(from, model.StatusPostponed))
	}
}

func TestRecordToolkitSent_TransitionsNewToInProcess(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusNew}

	require.NoError(t, RecordToolkitSent(e, now, "admin-1"))

	assert.Equal(t, model.StatusInProcess, e.Status)
	require.NotNil(t, e.ToolkitSentAt)
	assert.Equal(t, now, *e.ToolkitSentAt)
	assert.Equal(t, "admin-1", e.ToolkitSentBy)
}

func TestRecordToolkitSent_ResendOnlyRefreshesStamp(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusInProcess}
	later := now.Add(48 * time.Hour)

	require.NoError(t, RecordToolkitSent(e, later, "admin-2"))

	assert.Equal(t, model.StatusInProcess, e.Status)
	assert.Equal(t, later, *e.ToolkitSentAt)
}

func TestSchedule_RequiresDate(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusInProcess}

	err := Schedule(e, "  ")
	assert.ErrorIs(t, err, ErrMissingScheduledDate)
	assert.Equal(t, model.StatusInProcess, e.Status)

	require.NoError(t, Schedule(e, "2025-07-04"))
	assert.Equal(t, model.StatusScheduled, e.Status)
	assert.Equal(t, "2025-07-04", e.ScheduledEventDate)
}

func TestSchedule_RejectedFromNew(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusNew}

	err := Schedule(e, "2025-07-04")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecline_AppendsReasonToNotes(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusScheduled, Notes: "existing note"}

	require.NoError(t, Decline(e, "venue unavailable"))

	assert.Equal(t, model.StatusDeclined, e.Status)
	assert.Equal(t, "existing note\nDeclined: venue unavailable", e.Notes)
}

func TestPostponeAndReactivate_KeepsPriorData(t *testing.T) {
	e := &model.EventRequest{
		Status:             model.StatusScheduled,
		ScheduledEventDate: "2025-07-04",
		AssignedDriverIDs:  []string{"42"},
	}

	require.NoError(t, Postpone(e, now))
	assert.Equal(t, model.StatusPostponed, e.Status)
	require.NotNil(t, e.PostponedAt)

	require.NoError(t, Reactivate(e))
	assert.Equal(t, model.StatusNew, e.Status)
	assert.Nil(t, e.PostponedAt)

	// Reactivation changes only the status; scheduling and staffing data
	// survive untouched
	assert.Equal(t, "2025-07-04", e.ScheduledEventDate)
	assert.Equal(t, []string{"42"}, e.AssignedDriverIDs)
}

func TestReactivate_FromDeclined(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusDeclined}

	require.NoError(t, Reactivate(e))
	assert.Equal(t, model.StatusNew, e.Status)
}

func TestComplete_OnlyFromScheduled(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusScheduled}
	require.NoError(t, Complete(e))
	assert.Equal(t, model.StatusCompleted, e.Status)

	for _, from := range []model.Status{model.StatusNew, model.StatusInProcess, model.StatusDeclined, model.StatusPostponed, model.StatusCompleted} {
		e := &model.EventRequest{Status: from}
		assert.ErrorIs(t, Complete(e), ErrInvalidTransition)
	}
}

func TestToggleConfirmed_IndependentOfStatus(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusPostponed}

	ToggleConfirmed(e)
	assert.True(t, e.IsConfirmed)
	assert.Equal(t, model.StatusPostponed, e.Status)

	ToggleConfirmed(e)
	assert.False(t, e.IsConfirmed)
}
