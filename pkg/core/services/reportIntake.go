package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/core/intake"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/status"
)

// IntakeReport is the read-only diagnostic view for one event request:
// which intake fields are missing and whether it has gone stale.
type IntakeReport struct {
	EventID      int64
	Status       model.Status
	Missing      []string
	FollowUp     status.FollowUp
	NextFollowUp time.Time
}

// ReportIntakeStore defines the reads needed for intake reporting
type ReportIntakeStore interface {
	GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error)
	ListEventRequests(ctx context.Context, statuses ...model.Status) ([]model.EventRequest, error)
}

// ReportIntake computes the missing-information set and follow-up
// staleness for a single event request.
func ReportIntake(
	ctx context.Context,
	store ReportIntakeStore,
	cfg *config.Config,
	logger *zap.Logger,
	eventID int64,
	now time.Time,
) (*IntakeReport, error) {
	event, err := store.GetEventRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event request: %w", err)
	}

	report := buildReport(event, cfg, now)
	logger.Debug("Intake report",
		zap.Int64("event_id", eventID),
		zap.Int("missing", len(report.Missing)),
		zap.Bool("follow_up", report.FollowUp.Needed))

	return &report, nil
}

// ReportOpenIntake computes intake reports for every open (non-terminal,
// non-parked) event request.
func ReportOpenIntake(
	ctx context.Context,
	store ReportIntakeStore,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
) ([]IntakeReport, error) {
	events, err := store.ListEventRequests(ctx, model.StatusNew, model.StatusInProcess, model.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list event requests: %w", err)
	}

	reports := make([]IntakeReport, 0, len(events))
	for i := range events {
		reports = append(reports, buildReport(&events[i], cfg, now))
	}

	logger.Debug("Open intake reports", zap.Int("count", len(reports)))
	return reports, nil
}

func buildReport(event *model.EventRequest, cfg *config.Config, now time.Time) IntakeReport {
	report := IntakeReport{
		EventID:  event.ID,
		Status:   event.Status,
		Missing:  intake.MissingInfo(event),
		FollowUp: status.CheckFollowUp(event, now, cfg.StaleDays()),
	}

	if rule := followUpRule(cfg); rule != nil {
		report.NextFollowUp = status.NextFollowUpDate(event, rule, now)
	}
	return report
}

// followUpRule parses the configured cadence rule. Config validation
// already checked the syntax, so a parse failure here means no cadence.
func followUpRule(cfg *config.Config) *rrule.RRule {
	if cfg.FollowUpRRule == "" {
		return nil
	}
	rule, err := rrule.StrToRRule(cfg.FollowUpRRule)
	if err != nil {
		return nil
	}
	return rule
}
