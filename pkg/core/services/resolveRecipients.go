package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/recipient"
)

// ResolvedRecipient pairs a stored reference with its resolution
type ResolvedRecipient struct {
	Ref  string
	Name string
	Kind string
}

// ResolveRecipientsStore defines the reads needed to resolve an event's
// recipient references
type ResolveRecipientsStore interface {
	RecipientTableStore
	GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error)
}

// ResolveRecipients resolves every recipient reference on an event request.
// All three lookup tables are loaded up front, so legacy bare-id references
// resolve rather than returning the loading sentinel.
func ResolveRecipients(
	ctx context.Context,
	store ResolveRecipientsStore,
	logger *zap.Logger,
	eventID int64,
) ([]ResolvedRecipient, error) {
	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event request: %w", err)
	}

	tables, err := loadRecipientTables(ctx, store)
	if err != nil {
		return nil, err
	}

	resolved := make([]ResolvedRecipient, 0, len(event.RecipientRefs))
	for _, ref := range event.RecipientRefs {
		r := recipient.Resolve(ref, tables)
		resolved = append(resolved, ResolvedRecipient{Ref: ref, Name: r.Name, Kind: r.Kind})
	}

	logger.Debug("Resolved recipients",
		zap.Int64("event_id", eventID),
		zap.Int("count", len(resolved)))

	return resolved, nil
}
