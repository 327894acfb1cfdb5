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

// RemoveAssignment deletes exactly one participant from the event's
// assignment set and detail map for role. Removal is the only way an
// assignment leaves an event; merges never drop anything.
func RemoveAssignment(
	ctx context.Context,
	store AssignParticipantsStore,
	logger *zap.Logger,
	eventID int64,
	role model.Role,
	participantID string,
	actor string,
	now time.Time,
) (*AssignParticipantsResult, error) {
	logger.Debug("Starting removeAssignment",
		zap.Int64("event_id", eventID),
		zap.String("role", string(role)),
		zap.String("participant_id", participantID))

	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event request: %w", err)
	}

	removedName := ""
	if detail, ok := event.Details(role)[participantID]; ok {
		removedName = detail.Name
	}

	result, err := assignment.Remove(event, role, participantID)
	if err != nil {
		return nil, fmt.Errorf("remove failed: %w", err)
	}

	update := assignmentUpdate(role, result)
	if err := store.UpdateEventRequest(ctx, eventID, update, event.Version); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}

	audit := db.AssignmentAudit{
		ID:            uuid.New().String(),
		EventID:       eventID,
		Role:          string(role),
		ParticipantID: participantID,
		Name:          removedName,
		Action:        db.AuditActionRemoved,
		ActorID:       actor,
		OccurredAt:    now,
	}
	if err := store.InsertAssignmentAudits(ctx, []db.AssignmentAudit{audit}); err != nil {
		return nil, fmt.Errorf("failed to record removal audit: %w", err)
	}

	logger.Info("Assignment removed",
		zap.Int64("event_id", eventID),
		zap.String("role", string(role)),
		zap.String("participant_id", participantID),
		zap.Int("remaining", len(result.AssignedIDs)))

	return &AssignParticipantsResult{
		EventID:     eventID,
		Role:        role,
		AssignedIDs: result.AssignedIDs,
		Names:       result.Names,
	}, nil
}
