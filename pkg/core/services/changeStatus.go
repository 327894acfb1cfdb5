package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/status"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

// StatusAction names an explicit user-triggered lifecycle action
type StatusAction string

const (
	ActionBeginProcessing StatusAction = "begin_processing"
	ActionSchedule        StatusAction = "schedule"
	ActionComplete        StatusAction = "complete"
	ActionDecline         StatusAction = "decline"
	ActionPostpone        StatusAction = "postpone"
	ActionReactivate      StatusAction = "reactivate"
)

// ChangeStatusParams carries the per-action inputs
type ChangeStatusParams struct {
	Action             StatusAction
	ScheduledEventDate string // schedule only
	Reason             string // decline only
	Now                time.Time
}

// ChangeStatusStore defines the database operations for status changes
type ChangeStatusStore interface {
	GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error)
	UpdateEventRequest(ctx context.Context, id int64, update db.EventRequestUpdate, expectedVersion int64) error
}

// ChangeStatus applies one explicit lifecycle action to an event request
// and persists the resulting status plus its side-effect fields.
func ChangeStatus(
	ctx context.Context,
	store ChangeStatusStore,
	logger *zap.Logger,
	eventID int64,
	params ChangeStatusParams,
) (*model.EventRequest, error) {
	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event request: %w", err)
	}

	from := event.Status
	update := db.EventRequestUpdate{}

	switch params.Action {
	case ActionBeginProcessing:
		err = status.BeginProcessing(event)
	case ActionSchedule:
		err = status.Schedule(event, params.ScheduledEventDate)
		if err == nil {
			update.ScheduledEventDate = &event.ScheduledEventDate
		}
	case ActionComplete:
		err = status.Complete(event)
	case ActionDecline:
		err = status.Decline(event, params.Reason)
		if err == nil {
			update.Notes = &event.Notes
		}
	case ActionPostpone:
		err = status.Postpone(event, params.Now)
		if err == nil {
			update.PostponedAt = event.PostponedAt
		}
	case ActionReactivate:
		err = status.Reactivate(event)
		if err == nil {
			update.ClearPostponedAt = true
		}
	default:
		return nil, fmt.Errorf("unknown status action %q", params.Action)
	}
	if err != nil {
		return nil, err
	}

	update.Status = &event.Status
	if err := store.UpdateEventRequest(ctx, eventID, update, event.Version); err != nil {
		return nil, fmt.Errorf("failed to save status change: %w", err)
	}

	logger.Info("Status changed",
		zap.Int64("event_id", eventID),
		zap.String("action", string(params.Action)),
		zap.String("from", string(from)),
		zap.String("to", string(event.Status)))

	return event, nil
}

// ToggleConfirmation flips the date-confirmation flag. This is a dedicated
// action independent of the status machine.
func ToggleConfirmation(
	ctx context.Context,
	store ChangeStatusStore,
	logger *zap.Logger,
	eventID int64,
) (bool, error) {
	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch event request: %w", err)
	}

	status.ToggleConfirmed(event)
	update := db.EventRequestUpdate{IsConfirmed: &event.IsConfirmed}
	if err := store.UpdateEventRequest(ctx, eventID, update, event.Version); err != nil {
		return false, fmt.Errorf("failed to save confirmation flag: %w", err)
	}

	logger.Info("Confirmation toggled",
		zap.Int64("event_id", eventID),
		zap.Bool("is_confirmed", event.IsConfirmed))

	return event.IsConfirmed, nil
}
