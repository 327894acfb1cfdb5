package status

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// DefaultStaleDays is the follow-up window used when config does not
// override it.
const DefaultStaleDays = 7

// FollowUp is the derived staleness judgment for one event request. It is
// a read-only view over the auxiliary timestamps, never a status value.
type FollowUp struct {
	Needed bool
	Reason string
}

// CheckFollowUp reports whether an in-flight request has gone stale: the
// toolkit went out more than staleDays ago with no later contact attempt,
// or the last contact attempt is itself older than staleDays. Terminal and
// parked requests never need follow-up.
func CheckFollowUp(e *model.EventRequest, now time.Time, staleDays int) FollowUp {
	if staleDays <= 0 {
		staleDays = DefaultStaleDays
	}
	switch e.Status {
	case model.StatusCompleted, model.StatusDeclined, model.StatusPostponed:
		return FollowUp{}
	}

	cutoff := now.AddDate(0, 0, -staleDays)

	if e.LastContactAt != nil {
		if e.LastContactAt.Before(cutoff) {
			return FollowUp{
				Needed: true,
				Reason: fmt.Sprintf("last contact attempt was %s", e.LastContactAt.Format("2006-01-02")),
			}
		}
		return FollowUp{}
	}

	if e.ToolkitSentAt != nil && e.ToolkitSentAt.Before(cutoff) {
		return FollowUp{
			Needed: true,
			Reason: fmt.Sprintf("toolkit sent %s with no contact attempt since", e.ToolkitSentAt.Format("2006-01-02")),
		}
	}

	return FollowUp{}
}

// NextFollowUpDate computes the next follow-up occurrence from the
// configured cadence rule, anchored at the later of the toolkit send and
// the last contact attempt. Returns the zero time when no anchor exists.
func NextFollowUpDate(e *model.EventRequest, rule *rrule.RRule, now time.Time) time.Time {
	var anchor time.Time
	if e.ToolkitSentAt != nil {
		anchor = *e.ToolkitSentAt
	}
	if e.LastContactAt != nil && e.LastContactAt.After(anchor) {
		anchor = *e.LastContactAt
	}
	if anchor.IsZero() || rule == nil {
		return time.Time{}
	}

	rule.DTStart(anchor)
	return rule.After(now, false)
}
