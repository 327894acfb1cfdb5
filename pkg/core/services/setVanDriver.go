package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

// SetVanDriverStore defines the database operations for the van driver slot
type SetVanDriverStore interface {
	GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error)
	UpdateEventRequest(ctx context.Context, id int64, update db.EventRequestUpdate, expectedVersion int64) error
}

// SetVanDriver overwrites or clears the single van driver slot. The slot is
// never merged: pass the new identifier, or an empty string to clear it.
func SetVanDriver(
	ctx context.Context,
	store SetVanDriverStore,
	logger *zap.Logger,
	eventID int64,
	vanDriverID string,
) error {
	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event request: %w", err)
	}

	update := db.EventRequestUpdate{VanDriverID: &vanDriverID}
	if err := store.UpdateEventRequest(ctx, eventID, update, event.Version); err != nil {
		return fmt.Errorf("failed to save van driver: %w", err)
	}

	if vanDriverID == "" {
		logger.Info("Van driver cleared", zap.Int64("event_id", eventID))
	} else {
		logger.Info("Van driver set",
			zap.Int64("event_id", eventID),
			zap.String("van_driver_id", vanDriverID))
	}

	return nil
}
