// Package assignment implements the staffing merge engine: it folds newly
// selected participant identifiers into an event's existing assignment set
// and detail map without losing or rewriting anything already recorded.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"github.com/communitykitchen/eventdesk/pkg/core/identity"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

var (
	// ErrInvalidRole is returned for roles outside driver/speaker/volunteer
	ErrInvalidRole = errors.New("invalid assignment role")
	// ErrNoEvent is returned when the target event snapshot is missing
	ErrNoEvent = errors.New("no event to merge into")
)

// Result is the merged assignment state for one role, ready to persist.
// AssignedIDs preserves existing order first, then new ids in first-seen
// order; Names follows the same order.
type Result struct {
	AssignedIDs []string
	Details     map[string]model.AssignmentDetail
	Names       []string
}

// Merge unions selected into the event's assignment set for role. Existing
// detail entries are left untouched; ids without a detail entry get one
// stamped with now and actor, the name resolved through dir.
//
// The operation is idempotent and fail-closed: an invalid role or nil event
// aborts with no partial result.
func Merge(event *model.EventRequest, role model.Role, selected []string, dir *identity.Directory, now time.Time, actor string) (*Result, error) {
	if event == nil {
		return nil, ErrNoEvent
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	existing := event.AssignedIDs(role)
	existingDetails := event.Details(role)

	allIDs := make([]string, 0, len(existing)+len(selected))
	seen := make(map[string]bool, len(existing)+len(selected))
	for _, id := range existing {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		allIDs = append(allIDs, id)
	}
	for _, id := range selected {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		allIDs = append(allIDs, id)
	}

	details := make(map[string]model.AssignmentDetail, len(allIDs))
	names := make([]string, 0, len(allIDs))
	for _, id := range allIDs {
		detail, ok := existingDetails[id]
		if !ok {
			detail = model.AssignmentDetail{
				Name:       dir.Resolve(id, role),
				AssignedAt: now,
				AssignedBy: actor,
			}
		}
		details[id] = detail
		names = append(names, detail.Name)
	}

	return &Result{AssignedIDs: allIDs, Details: details, Names: names}, nil
}

// Remove deletes exactly one identifier from both the set and the detail
// map for role. Removing an id that is not assigned is a no-op on the data
// but still returns the (unchanged) result so callers can persist it.
func Remove(event *model.EventRequest, role model.Role, id string) (*Result, error) {
	if event == nil {
		return nil, ErrNoEvent
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	existing := event.AssignedIDs(role)
	existingDetails := event.Details(role)

	ids := make([]string, 0, len(existing))
	for _, existingID := range existing {
		if existingID == id {
			continue
		}
		ids = append(ids, existingID)
	}

	details := make(map[string]model.AssignmentDetail, len(existingDetails))
	names := make([]string, 0, len(ids))
	for _, keptID := range ids {
		if detail, ok := existingDetails[keptID]; ok {
			details[keptID] = detail
			names = append(names, detail.Name)
		}
	}

	return &Result{AssignedIDs: ids, Details: details, Names: names}, nil
}

// NewlyAdded returns the ids present in the merge result but not in the
// pre-merge event snapshot, in result order. Used for audit records.
func NewlyAdded(event *model.EventRequest, role model.Role, result *Result) []string {
	before := make(map[string]bool)
	for _, id := range event.AssignedIDs(role) {
		before[id] = true
	}
	added := make([]string, 0)
	for _, id := range result.AssignedIDs {
		if !before[id] {
			added = append(added, id)
		}
	}
	return added
}
