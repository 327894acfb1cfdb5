package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/core/identity"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// RosterWriter publishes roster rows to a spreadsheet tab
type RosterWriter interface {
	WriteRoster(spreadsheetID, tab string, rows [][]interface{}) error
}

// PublishRosterStore defines the reads behind roster publishing
type PublishRosterStore interface {
	DirectoryStore
	ListEventRequests(ctx context.Context, statuses ...model.Status) ([]model.EventRequest, error)
}

// PublishRosterResult summarizes what was published
type PublishRosterResult struct {
	SpreadsheetID string
	Tab           string
	EventCount    int
}

var rosterHeader = []interface{}{
	"Date", "Organizer", "Address", "Drivers", "Van driver", "Speakers", "Volunteers", "Sandwiches",
}

// PublishRoster writes the staffing roster for all scheduled events to the
// configured Google Sheet tab. Names come from the recorded assignment
// details, falling back to live directory resolution for ids assigned
// before details were tracked.
func PublishRoster(
	ctx context.Context,
	store PublishRosterStore,
	sheet RosterWriter,
	cfg *config.Config,
	logger *zap.Logger,
) (*PublishRosterResult, error) {
	events, err := store.ListEventRequests(ctx, model.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled events: %w", err)
	}

	dir, err := loadDirectory(ctx, store)
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{rosterHeader}
	for i := range events {
		rows = append(rows, rosterRow(&events[i], dir))
	}

	if err := sheet.WriteRoster(cfg.RosterSheetID, cfg.RosterTab, rows); err != nil {
		return nil, fmt.Errorf("failed to write roster: %w", err)
	}

	logger.Info("Roster published",
		zap.String("spreadsheet_id", cfg.RosterSheetID),
		zap.String("tab", cfg.RosterTab),
		zap.Int("events", len(events)))

	return &PublishRosterResult{
		SpreadsheetID: cfg.RosterSheetID,
		Tab:           cfg.RosterTab,
		EventCount:    len(events),
	}, nil
}

func rosterRow(event *model.EventRequest, dir *identity.Directory) []interface{} {
	vanDriver := ""
	if event.VanDriverID != "" {
		vanDriver = dir.Resolve(event.VanDriverID, model.RoleDriver)
	}

	sandwiches := ""
	if event.Sandwiches.IsSet() {
		sandwiches = fmt.Sprintf("%d", event.Sandwiches.Total())
	}

	return []interface{}{
		formatDate(event.ScheduledEventDate),
		event.OrganizerName,
		event.Address,
		joinNames(roleNames(event, model.RoleDriver, dir)),
		vanDriver,
		joinNames(roleNames(event, model.RoleSpeaker, dir)),
		joinNames(roleNames(event, model.RoleVolunteer, dir)),
		sandwiches,
	}
}

// roleNames prefers recorded detail names over live resolution so the
// roster matches what was true at assignment time
func roleNames(event *model.EventRequest, role model.Role, dir *identity.Directory) []string {
	ids := event.AssignedIDs(role)
	details := event.Details(role)

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if detail, ok := details[id]; ok && detail.Name != "" {
			names = append(names, detail.Name)
			continue
		}
		names = append(names, dir.Resolve(id, role))
	}
	return names
}

func formatDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Mon Jan 2 2006")
}
