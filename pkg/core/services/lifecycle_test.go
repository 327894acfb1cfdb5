package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/status"
)

// TestEventRequestLifecycle walks one request from intake to completion
// through the service layer, checking the persisted state at each step.
func TestEventRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(&model.EventRequest{
		ID:             1,
		Status:         model.StatusNew,
		OrganizerName:  "Dana",
		OrganizerEmail: "dana@example.org",
		RequestedDate:  "2025-06-14",
		Address:        "12 Hill St",
	})
	store.drivers = []model.Driver{{ID: 42, Name: "Bob the Driver"}}
	mailer := &mockMailer{}

	// Toolkit goes out and the request moves into processing
	sent, err := SendToolkit(ctx, store, mailer, testConfig(), testLogger, 1, "admin-1", mergeTime)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProcess, sent.Status)

	// Assign the traditional driver
	assignTime := mergeTime.Add(time.Hour)
	first, err := AssignParticipants(ctx, store, testLogger, 1, model.RoleDriver, []string{"42"}, "admin-1", assignTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, first.AssignedIDs)
	assert.Equal(t, []string{"Bob the Driver"}, first.Names)

	// A later assignment adds a custom driver without touching the first
	laterTime := assignTime.Add(time.Hour)
	second, err := AssignParticipants(ctx, store, testLogger, 1, model.RoleDriver,
		[]string{"42", "custom-1700000000000-Alex-Reed"}, "admin-2", laterTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "custom-1700000000000-Alex-Reed"}, second.AssignedIDs)
	assert.Equal(t, []string{"custom-1700000000000-Alex-Reed"}, second.Added)

	saved := store.events[1]
	assert.Equal(t, assignTime, saved.DriverDetails["42"].AssignedAt)
	assert.Equal(t, "admin-1", saved.DriverDetails["42"].AssignedBy)
	assert.Equal(t, "Alex Reed", saved.DriverDetails["custom-1700000000000-Alex-Reed"].Name)

	// Schedule and complete
	_, err = ChangeStatus(ctx, store, testLogger, 1, ChangeStatusParams{
		Action:             ActionSchedule,
		ScheduledEventDate: "2025-06-14",
	})
	require.NoError(t, err)

	_, err = ChangeStatus(ctx, store, testLogger, 1, ChangeStatusParams{Action: ActionComplete})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, store.events[1].Status)

	// Completed is terminal: no further transition is accepted
	_, err = ChangeStatus(ctx, store, testLogger, 1, ChangeStatusParams{Action: ActionReactivate})
	assert.ErrorIs(t, err, status.ErrInvalidTransition)

	// Assignment history survives the whole run
	assert.Equal(t, []string{"42", "custom-1700000000000-Alex-Reed"}, store.events[1].AssignedDriverIDs)
	assert.Len(t, store.audits, 2)
}
