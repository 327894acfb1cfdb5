package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitykitchen/eventdesk/pkg/core/intake"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

func intPtr(n int) *int { return &n }

func completeEvent(id int64, status model.Status) *model.EventRequest {
	count := 120
	return &model.EventRequest{
		ID:                  id,
		Status:              status,
		RequestedDate:       "2025-06-14",
		ScheduledEventDate:  "2025-06-14",
		StartTime:           "10:00",
		EndTime:             "13:00",
		Address:             "12 Hill St",
		Sandwiches:          model.SandwichCount{Exact: &count, Type: "mixed"},
		EstimatedAttendance: 60,
		OrganizerName:       "Dana",
		OrganizerEmail:      "dana@example.org",
		OrganizerPhone:      "555-0101",
	}
}

func TestReportIntake_FlagsMissingFields(t *testing.T) {
	// Address present but empty count and no attendance estimate
	store := newMockStore(&model.EventRequest{
		ID:                 1,
		Status:             model.StatusInProcess,
		Address:            "12 Hill St",
		Sandwiches:         model.SandwichCount{Exact: intPtr(0)},
		RequestedDate:      "2025-06-14",
		StartTime:          "10:00",
		EndTime:            "13:00",
		OrganizerName:      "Dana",
		OrganizerEmail:     "dana@example.org",
		OrganizerPhone:     "555-0101",
	})

	report, err := ReportIntake(context.Background(), store, testConfig(), testLogger, 1, mergeTime)
	require.NoError(t, err)

	assert.Equal(t, []string{intake.LabelSandwichCount, intake.LabelAttendance}, report.Missing)
	assert.False(t, report.FollowUp.Needed)
}

func TestReportIntake_CompleteIntakeIsEmpty(t *testing.T) {
	store := newMockStore(completeEvent(1, model.StatusScheduled))

	report, err := ReportIntake(context.Background(), store, testConfig(), testLogger, 1, mergeTime)
	require.NoError(t, err)
	assert.Empty(t, report.Missing)
}

func TestReportIntake_StaleToolkitNeedsFollowUp(t *testing.T) {
	sentAt := mergeTime.AddDate(0, 0, -10)
	event := completeEvent(1, model.StatusInProcess)
	event.ToolkitSentAt = &sentAt
	store := newMockStore(event)

	report, err := ReportIntake(context.Background(), store, testConfig(), testLogger, 1, mergeTime)
	require.NoError(t, err)
	assert.True(t, report.FollowUp.Needed)
	assert.Contains(t, report.FollowUp.Reason, "toolkit sent")
}

func TestReportIntake_CadenceComputesNextFollowUp(t *testing.T) {
	sentAt := mergeTime.AddDate(0, 0, -10)
	event := completeEvent(1, model.StatusInProcess)
	event.ToolkitSentAt = &sentAt
	store := newMockStore(event)

	cfg := testConfig()
	cfg.FollowUpRRule = "FREQ=WEEKLY"

	report, err := ReportIntake(context.Background(), store, testConfig(), testLogger, 1, mergeTime)
	require.NoError(t, err)
	assert.True(t, report.NextFollowUp.IsZero())

	report, err = ReportIntake(context.Background(), store, cfg, testLogger, 1, mergeTime)
	require.NoError(t, err)
	assert.False(t, report.NextFollowUp.IsZero())
	assert.True(t, report.NextFollowUp.After(mergeTime))
}

func TestReportOpenIntake_SkipsTerminalAndParked(t *testing.T) {
	store := newMockStore(
		completeEvent(1, model.StatusNew),
		completeEvent(2, model.StatusInProcess),
		completeEvent(3, model.StatusScheduled),
		completeEvent(4, model.StatusCompleted),
		completeEvent(5, model.StatusDeclined),
		completeEvent(6, model.StatusPostponed),
	)

	reports, err := ReportOpenIntake(context.Background(), store, testConfig(), testLogger, mergeTime)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	seen := make(map[int64]model.Status)
	for _, report := range reports {
		seen[report.EventID] = report.Status
	}
	assert.Contains(t, seen, int64(1))
	assert.Contains(t, seen, int64(2))
	assert.Contains(t, seen, int64(3))
}

func TestReportIntake_RecomputedPerCall(t *testing.T) {
	event := completeEvent(1, model.StatusInProcess)
	event.Address = ""
	store := newMockStore(event)

	report, err := ReportIntake(context.Background(), store, testConfig(), testLogger, 1, mergeTime)
	require.NoError(t, err)
	assert.Equal(t, []string{intake.LabelAddress}, report.Missing)

	store.events[1].Address = "12 Hill St"
	report, err = ReportIntake(context.Background(), store, testConfig(), testLogger, 1, mergeTime)
	require.NoError(t, err)
	assert.Empty(t, report.Missing)
}
