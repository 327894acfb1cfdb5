package model

import "time"

// Role identifies a staffing role on an event request
type Role string

const (
	RoleDriver    Role = "driver"
	RoleSpeaker   Role = "speaker"
	RoleVolunteer Role = "volunteer"
)

func (r Role) IsValid() bool {
	return r == RoleDriver || r == RoleSpeaker || r == RoleVolunteer
}

// Status is the lifecycle state of an event request
type Status string

const (
	StatusNew       Status = "new"
	StatusInProcess Status = "in_process"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
	StatusPostponed Status = "postponed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProcess, StatusScheduled, StatusCompleted, StatusDeclined, StatusPostponed:
		return true
	}
	return false
}

// AssignmentDetail records who was assigned, when, and by whom.
// Entries are write-once: the merge engine never rewrites an existing entry.
type AssignmentDetail struct {
	Name       string    `json:"name"`
	AssignedAt time.Time `json:"assignedAt"`
	AssignedBy string    `json:"assignedBy"`
}

// SandwichItem is one line of an itemized sandwich order
type SandwichItem struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// SandwichCount holds the sandwich order in one of three mutually exclusive
// modes: an exact count, a min/max range with optional type, or an itemized
// type/quantity list.
type SandwichCount struct {
	Exact *int           `json:"exact,omitempty"`
	Min   *int           `json:"min,omitempty"`
	Max   *int           `json:"max,omitempty"`
	Type  string         `json:"type,omitempty"`
	Items []SandwichItem `json:"items,omitempty"`
}

// Total returns the best-effort sandwich total for the active mode
func (s SandwichCount) Total() int {
	switch {
	case len(s.Items) > 0:
		total := 0
		for _, item := range s.Items {
			total += item.Quantity
		}
		return total
	case s.Exact != nil:
		return *s.Exact
	case s.Max != nil:
		return *s.Max
	case s.Min != nil:
		return *s.Min
	}
	return 0
}

// IsSet reports whether any mode carries a non-zero order
func (s SandwichCount) IsSet() bool {
	return s.Total() > 0
}

// TSPContact is the designated liaison for an event request: either a team
// member (user id) or a free-text custom contact, never both.
type TSPContact struct {
	UserID string `json:"userId,omitempty"`
	Custom string `json:"custom,omitempty"`
}

func (c TSPContact) IsSet() bool {
	return c.UserID != "" || c.Custom != ""
}

// EventRequest is the aggregate root for a single community event request.
// Date-only fields use the "2006-01-02" format; zero timestamps mean unset.
type EventRequest struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version"`

	Status Status `json:"status"`

	RequestedDate      string     `json:"requestedDate,omitempty"`
	ScheduledEventDate string     `json:"scheduledEventDate,omitempty"`
	IsConfirmed        bool       `json:"isConfirmed"`
	StartTime          string     `json:"startTime,omitempty"`
	EndTime            string     `json:"endTime,omitempty"`
	PickupAt           *time.Time `json:"pickupAt,omitempty"`

	AssignedDriverIDs    []string                    `json:"assignedDriverIds"`
	DriverDetails        map[string]AssignmentDetail `json:"driverDetails,omitempty"`
	AssignedSpeakerIDs   []string                    `json:"assignedSpeakerIds"`
	SpeakerDetails       map[string]AssignmentDetail `json:"speakerDetails,omitempty"`
	AssignedVolunteerIDs []string                    `json:"assignedVolunteerIds"`
	VolunteerDetails     map[string]AssignmentDetail `json:"volunteerDetails,omitempty"`

	// VanDriverID is a single optional slot, not part of the driver set
	VanDriverID string `json:"vanDriverId,omitempty"`

	RecipientRefs       []string      `json:"recipientRefs"`
	Address             string        `json:"address,omitempty"`
	Sandwiches          SandwichCount `json:"sandwiches"`
	EstimatedAttendance int           `json:"estimatedAttendance,omitempty"`

	OrganizerName  string     `json:"organizerName,omitempty"`
	OrganizerEmail string     `json:"organizerEmail,omitempty"`
	OrganizerPhone string     `json:"organizerPhone,omitempty"`
	TSP            TSPContact `json:"tsp"`
	Notes          string     `json:"notes,omitempty"`

	ToolkitSentAt             *time.Time `json:"toolkitSentAt,omitempty"`
	ToolkitSentBy             string     `json:"toolkitSentBy,omitempty"`
	ScheduledCallAt           *time.Time `json:"scheduledCallAt,omitempty"`
	LastContactAt             *time.Time `json:"lastContactAt,omitempty"`
	FollowUpOneDayCompleted   bool       `json:"followUpOneDayCompleted"`
	FollowUpOneDayAt          *time.Time `json:"followUpOneDayAt,omitempty"`
	FollowUpOneMonthCompleted bool       `json:"followUpOneMonthCompleted"`
	FollowUpOneMonthAt        *time.Time `json:"followUpOneMonthAt,omitempty"`
	PostponedAt               *time.Time `json:"postponedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssignedIDs returns the identifier set for the given role
func (e *EventRequest) AssignedIDs(role Role) []string {
	switch role {
	case RoleDriver:
		return e.AssignedDriverIDs
	case RoleSpeaker:
		return e.AssignedSpeakerIDs
	case RoleVolunteer:
		return e.AssignedVolunteerIDs
	}
	return nil
}

// Details returns the detail map for the given role
func (e *EventRequest) Details(role Role) map[string]AssignmentDetail {
	switch role {
	case RoleDriver:
		return e.DriverDetails
	case RoleSpeaker:
		return e.SpeakerDetails
	case RoleVolunteer:
		return e.VolunteerDetails
	}
	return nil
}

// StaffingCount is the total number of assigned participants across all
// roles. The van driver slot is additive to the driver set.
func (e *EventRequest) StaffingCount() int {
	count := len(e.AssignedDriverIDs) + len(e.AssignedSpeakerIDs) + len(e.AssignedVolunteerIDs)
	if e.VanDriverID != "" {
		count++
	}
	return count
}
