// Package intake derives the "missing information" set for an event
// request. It is a pure view over live field values, recomputed on every
// read; nothing here stores state or triggers transitions.
package intake

import (
	"strings"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// Field labels as shown on validation badges
const (
	LabelAddress       = "Address"
	LabelSandwichCount = "Sandwich count"
	LabelSandwichType  = "Sandwich type"
	LabelAttendance    = "Estimated attendance"
	LabelContactPhone  = "Contact phone"
	LabelContactEmail  = "Contact email"
	LabelOrganizer     = "Organizer name"
	LabelRequestedDate = "Requested date"
	LabelScheduledDate = "Scheduled date"
	LabelStartTime     = "Start time"
	LabelEndTime       = "End time"
)

// MissingInfo returns the labels of intake fields that are absent, empty,
// or zero placeholders. Date checks depend on status: a scheduled request
// is checked for its scheduled date, everything earlier for the requested
// date.
func MissingInfo(e *model.EventRequest) []string {
	missing := make([]string, 0)

	if blank(e.Address) {
		missing = append(missing, LabelAddress)
	}
	if !e.Sandwiches.IsSet() {
		missing = append(missing, LabelSandwichCount)
	}
	if sandwichTypeMissing(e.Sandwiches) {
		missing = append(missing, LabelSandwichType)
	}
	if e.EstimatedAttendance <= 0 {
		missing = append(missing, LabelAttendance)
	}
	if blank(e.OrganizerName) {
		missing = append(missing, LabelOrganizer)
	}
	if blank(e.OrganizerPhone) {
		missing = append(missing, LabelContactPhone)
	}
	if blank(e.OrganizerEmail) {
		missing = append(missing, LabelContactEmail)
	}

	switch e.Status {
	case model.StatusScheduled, model.StatusCompleted:
		if blank(e.ScheduledEventDate) {
			missing = append(missing, LabelScheduledDate)
		}
	default:
		if blank(e.RequestedDate) {
			missing = append(missing, LabelRequestedDate)
		}
	}

	if blank(e.StartTime) {
		missing = append(missing, LabelStartTime)
	}
	if blank(e.EndTime) {
		missing = append(missing, LabelEndTime)
	}

	return missing
}

// sandwichTypeMissing: itemized orders name their own types; a range order
// needs its Type field; an exact order has no type to ask for until a
// count exists.
func sandwichTypeMissing(s model.SandwichCount) bool {
	if len(s.Items) > 0 {
		for _, item := range s.Items {
			if blank(item.Type) {
				return true
			}
		}
		return false
	}
	if s.Min != nil || s.Max != nil {
		return blank(s.Type)
	}
	return s.Exact != nil && *s.Exact > 0 && blank(s.Type)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
