package db

import (
	"time"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// EventRequestUpdate is a partial-update payload: nil fields are left
// untouched. The core never overwrites a whole record.
type EventRequestUpdate struct {
	Status             *model.Status
	RequestedDate      *string
	ScheduledEventDate *string
	IsConfirmed        *bool
	StartTime          *string
	EndTime            *string
	PickupAt           *time.Time

	AssignedDriverIDs    *[]string
	DriverDetails        *map[string]model.AssignmentDetail
	AssignedSpeakerIDs   *[]string
	SpeakerDetails       *map[string]model.AssignmentDetail
	AssignedVolunteerIDs *[]string
	VolunteerDetails     *map[string]model.AssignmentDetail
	VanDriverID          *string

	RecipientRefs       *[]string
	Address             *string
	Sandwiches          *model.SandwichCount
	EstimatedAttendance *int

	OrganizerName  *string
	OrganizerEmail *string
	OrganizerPhone *string
	TSP            *model.TSPContact
	Notes          *string

	ToolkitSentAt             *time.Time
	ToolkitSentBy             *string
	ScheduledCallAt           *time.Time
	LastContactAt             *time.Time
	FollowUpOneDayCompleted   *bool
	FollowUpOneDayAt          *time.Time
	FollowUpOneMonthCompleted *bool
	FollowUpOneMonthAt        *time.Time
	PostponedAt               *time.Time
	ClearPostponedAt          bool
}

// AssignmentAudit is one row of the append-only staffing audit trail
type AssignmentAudit struct {
	ID            string
	EventID       int64
	Role          string
	ParticipantID string
	Name          string
	Action        string // "assigned" or "removed"
	ActorID       string
	OccurredAt    time.Time
}

const (
	AuditActionAssigned = "assigned"
	AuditActionRemoved  = "removed"
)
