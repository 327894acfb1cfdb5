package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

func intPtr(n int) *int { return &n }

func TestMissingInfo_ZeroSandwichCountAndNoAttendance(t *testing.T) {
	zero := 0
	e := &model.EventRequest{
		Status:     model.StatusNew,
		Address:    "12 High Street",
		Sandwiches: model.SandwichCount{Exact: &zero},
	}

	missing := MissingInfo(e)

	assert.Contains(t, missing, LabelSandwichCount)
	assert.Contains(t, missing, LabelAttendance)
	assert.NotContains(t, missing, LabelAddress)
}

func TestMissingInfo_CompleteIntake(t *testing.T) {
	e := &model.EventRequest{
		Status:              model.StatusNew,
		Address:             "12 High Street",
		Sandwiches:          model.SandwichCount{Exact: intPtr(80), Type: "mixed"},
		EstimatedAttendance: 75,
		OrganizerName:       "Dana Cole",
		OrganizerPhone:      "555-0100",
		OrganizerEmail:      "dana@example.org",
		RequestedDate:       "2025-07-04",
		StartTime:           "11:00",
		EndTime:             "14:00",
	}

	assert.Empty(t, MissingInfo(e))
}

func TestMissingInfo_RangeModeNeedsType(t *testing.T) {
	e := &model.EventRequest{
		Status:     model.StatusNew,
		Sandwiches: model.SandwichCount{Min: intPtr(40), Max: intPtr(60)},
	}

	missing := MissingInfo(e)
	assert.NotContains(t, missing, LabelSandwichCount)
	assert.Contains(t, missing, LabelSandwichType)
}

func TestMissingInfo_ItemizedModeCarriesItsOwnTypes(t *testing.T) {
	e := &model.EventRequest{
		Status: model.StatusNew,
		Sandwiches: model.SandwichCount{Items: []model.SandwichItem{
			{Type: "veggie", Quantity: 30},
			{Type: "ham", Quantity: 30},
		}},
	}

	missing := MissingInfo(e)
	assert.NotContains(t, missing, LabelSandwichCount)
	assert.NotContains(t, missing, LabelSandwichType)
}

func TestMissingInfo_DateCheckFollowsStatus(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusNew}
	assert.Contains(t, MissingInfo(e), LabelRequestedDate)
	assert.NotContains(t, MissingInfo(e), LabelScheduledDate)

	e.Status = model.StatusScheduled
	assert.Contains(t, MissingInfo(e), LabelScheduledDate)
	assert.NotContains(t, MissingInfo(e), LabelRequestedDate)

	e.ScheduledEventDate = "2025-07-04"
	assert.NotContains(t, MissingInfo(e), LabelScheduledDate)
}

func TestMissingInfo_RecomputedPerCall(t *testing.T) {
	e := &model.EventRequest{Status: model.StatusNew}
	assert.Contains(t, MissingInfo(e), LabelAddress)

	e.Address = "12 High Street"
	assert.NotContains(t, MissingInfo(e), LabelAddress)
}
