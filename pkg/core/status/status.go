// Package status implements the event request lifecycle: legal status
// transitions, the side effects each transition records, and the derived
// follow-up staleness view.
//
// Every transition is an explicit user action. Nothing here moves an event
// automatically, including past-date completion.
package status

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

var (
	// ErrInvalidTransition is returned for any illegal status change
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrMissingScheduledDate guards the in_process -> scheduled edge
	ErrMissingScheduledDate = errors.New("scheduled event date must be set before scheduling")
)

// transitions lists every legal edge. completed has no outgoing edges.
var transitions = map[model.Status][]model.Status{
	model.StatusNew:       {model.StatusInProcess, model.StatusDeclined, model.StatusPostponed},
	model.StatusInProcess: {model.StatusScheduled, model.StatusDeclined, model.StatusPostponed},
	model.StatusScheduled: {model.StatusCompleted, model.StatusDeclined, model.StatusPostponed},
	model.StatusDeclined:  {model.StatusNew},
	model.StatusPostponed: {model.StatusNew},
	model.StatusCompleted: nil,
}

// CanTransition reports whether from -> to is a legal edge
func CanTransition(from, to model.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to model.Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// BeginProcessing moves a new request into in_process without recording a
// toolkit send.
func BeginProcessing(e *model.EventRequest) error {
	if err := checkTransition(e.Status, model.StatusInProcess); err != nil {
		return err
	}
	e.Status = model.StatusInProcess
	return nil
}

// RecordToolkitSent stamps the toolkit-sent side effect and, if the request
// is still new, moves it into in_process. Re-sending a toolkit on an
// already in_process request only refreshes the stamp.
func RecordToolkitSent(e *model.EventRequest, now time.Time, actor string) error {
	if e.Status == model.StatusNew {
		if err := checkTransition(e.Status, model.StatusInProcess); err != nil {
			return err
		}
		e.Status = model.StatusInProcess
	}
	sent := now
	e.ToolkitSentAt = &sent
	e.ToolkitSentBy = actor
	return nil
}

// Schedule moves an in_process request to scheduled. The scheduled event
// date is a precondition, not a side effect: it must be supplied here.
func Schedule(e *model.EventRequest, scheduledEventDate string) error {
	if strings.TrimSpace(scheduledEventDate) == "" {
		return ErrMissingScheduledDate
	}
	if err := checkTransition(e.Status, model.StatusScheduled); err != nil {
		return err
	}
	e.Status = model.StatusScheduled
	e.ScheduledEventDate = scheduledEventDate
	return nil
}

// Complete confirms a scheduled event as completed. completed is terminal.
func Complete(e *model.EventRequest) error {
	if err := checkTransition(e.Status, model.StatusCompleted); err != nil {
		return err
	}
	e.Status = model.StatusCompleted
	return nil
}

// Decline declines the request and appends the reason to its notes
func Decline(e *model.EventRequest, reason string) error {
	if err := checkTransition(e.Status, model.StatusDeclined); err != nil {
		return err
	}
	e.Status = model.StatusDeclined
	if reason = strings.TrimSpace(reason); reason != "" {
		note := "Declined: " + reason
		if e.Notes != "" {
			e.Notes = e.Notes + "\n" + note
		} else {
			e.Notes = note
		}
	}
	return nil
}

// Postpone parks the request. Unlike decline, a postponed request is
// expected to come back via Reactivate.
func Postpone(e *model.EventRequest, now time.Time) error {
	if err := checkTransition(e.Status, model.StatusPostponed); err != nil {
		return err
	}
	e.Status = model.StatusPostponed
	at := now
	e.PostponedAt = &at
	return nil
}

// Reactivate returns a declined or postponed request to new. It clears the
// postponement stamp but deliberately leaves prior scheduling and staffing
// fields in place.
func Reactivate(e *model.EventRequest) error {
	if err := checkTransition(e.Status, model.StatusNew); err != nil {
		return err
	}
	e.Status = model.StatusNew
	e.PostponedAt = nil
	return nil
}

// ToggleConfirmed flips the date-confirmation flag. It is independent of
// the status value and legal in any state.
func ToggleConfirmed(e *model.EventRequest) {
	e.IsConfirmed = !e.IsConfirmed
}
