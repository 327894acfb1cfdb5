package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/status"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

// ToolkitMailer sends the logistics toolkit email to an event organizer
type ToolkitMailer interface {
	SendEmail(to, subject, body string) error
}

// SendToolkitResult reports what was sent and the resulting status
type SendToolkitResult struct {
	EventID int64
	SentTo  string
	Status  model.Status
}

// SendToolkit emails the logistics toolkit to the event organizer, stamps
// the toolkit-sent side effect, and moves a new request into in_process.
func SendToolkit(
	ctx context.Context,
	store ChangeStatusStore,
	mailer ToolkitMailer,
	cfg *config.Config,
	logger *zap.Logger,
	eventID int64,
	actor string,
	now time.Time,
) (*SendToolkitResult, error) {
	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event request: %w", err)
	}

	if event.OrganizerEmail == "" {
		return nil, fmt.Errorf("event request %d has no organizer email", eventID)
	}

	subject := "Your event toolkit"
	body := toolkitBody(event, cfg.GmailSender)
	if err := mailer.SendEmail(event.OrganizerEmail, subject, body); err != nil {
		return nil, fmt.Errorf("failed to send toolkit email: %w", err)
	}

	if err := status.RecordToolkitSent(event, now, actor); err != nil {
		return nil, err
	}

	update := db.EventRequestUpdate{
		Status:        &event.Status,
		ToolkitSentAt: event.ToolkitSentAt,
		ToolkitSentBy: &event.ToolkitSentBy,
	}
	if err := store.UpdateEventRequest(ctx, eventID, update, event.Version); err != nil {
		return nil, fmt.Errorf("failed to save toolkit stamp: %w", err)
	}

	logger.Info("Toolkit sent",
		zap.Int64("event_id", eventID),
		zap.String("to", event.OrganizerEmail),
		zap.String("status", string(event.Status)))

	return &SendToolkitResult{
		EventID: eventID,
		SentTo:  event.OrganizerEmail,
		Status:  event.Status,
	}, nil
}

func toolkitBody(event *model.EventRequest, sender string) string {
	date := event.ScheduledEventDate
	if date == "" {
		date = event.RequestedDate
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for hosting an event with us. Here is your toolkit.\n\nDate: %s\nAddress: %s\n",
		event.OrganizerName, date, event.Address)
	if event.Sandwiches.IsSet() {
		body += fmt.Sprintf("Sandwiches: %d\n", event.Sandwiches.Total())
	}
	if sender != "" {
		body += "\nBest,\n" + sender + "\n"
	}
	return body
}
