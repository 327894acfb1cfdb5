package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/pkg/core/assignment"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

// AssignParticipantsResult reports the post-merge staffing state for one role
type AssignParticipantsResult struct {
	EventID     int64
	Role        model.Role
	AssignedIDs []string
	Names       []string
	Added       []string
}

// AssignParticipantsStore defines the database operations needed to merge
// staffing assignments
type AssignParticipantsStore interface {
	DirectoryStore
	GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error)
	UpdateEventRequest(ctx context.Context, id int64, update db.EventRequestUpdate, expectedVersion int64) error
	InsertAssignmentAudits(ctx context.Context, audits []db.AssignmentAudit) error
}

// AssignParticipants merges the selected participant identifiers into the
// event's assignment set for role and persists the result as a partial
// update guarded by the event's version. The event snapshot is re-fetched
// here, immediately before merging, to bound the staleness window.
func AssignParticipants(
	ctx context.Context,
	store AssignParticipantsStore,
	logger *zap.Logger,
	eventID int64,
	role model.Role,
	selected []string,
	actor string,
	now time.Time,
) (*AssignParticipantsResult, error) {
	logger.Debug("Starting assignParticipants",
		zap.Int64("event_id", eventID),
		zap.String("role", string(role)),
		zap.Strings("selected", selected))

	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", assignment.ErrInvalidRole, role)
	}

	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event request: %w", err)
	}

	dir, err := loadDirectory(ctx, store)
	if err != nil {
		return nil, err
	}

	result, err := assignment.Merge(event, role, selected, dir, now, actor)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	added := assignment.NewlyAdded(event, role, result)

	update := assignmentUpdate(role, result)
	if err := store.UpdateEventRequest(ctx, eventID, update, event.Version); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}

	audits := make([]db.AssignmentAudit, 0, len(added))
	for _, id := range added {
		audits = append(audits, db.AssignmentAudit{
			ID:            uuid.New().String(),
			EventID:       eventID,
			Role:          string(role),
			ParticipantID: id,
			Name:          result.Details[id].Name,
			Action:        db.AuditActionAssigned,
			ActorID:       actor,
			OccurredAt:    now,
		})
	}
	if err := store.InsertAssignmentAudits(ctx, audits); err != nil {
		return nil, fmt.Errorf("failed to record assignment audit: %w", err)
	}

	logger.Info("Assignments merged",
		zap.Int64("event_id", eventID),
		zap.String("role", string(role)),
		zap.Int("total", len(result.AssignedIDs)),
		zap.Int("added", len(added)))

	return &AssignParticipantsResult{
		EventID:     eventID,
		Role:        role,
		AssignedIDs: result.AssignedIDs,
		Names:       result.Names,
		Added:       added,
	}, nil
}

// assignmentUpdate maps a merge result onto the partial-update payload for
// the right role columns
func assignmentUpdate(role model.Role, result *assignment.Result) db.EventRequestUpdate {
	var update db.EventRequestUpdate
	switch role {
	case model.RoleDriver:
		update.AssignedDriverIDs = &result.AssignedIDs
		update.DriverDetails = &result.Details
	case model.RoleSpeaker:
		update.AssignedSpeakerIDs = &result.AssignedIDs
		update.SpeakerDetails = &result.Details
	case model.RoleVolunteer:
		update.AssignedVolunteerIDs = &result.AssignedIDs
		update.VolunteerDetails = &result.Details
	}
	return update
}
