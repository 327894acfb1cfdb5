package services

import (
	"context"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

// mockStore is an in-memory store implementing every service store
// interface. UpdateEventRequest applies partial updates and enforces the
// optimistic version check the same way the postgres store does.
type mockStore struct {
	events        map[int64]*model.EventRequest
	users         []model.User
	drivers       []model.Driver
	volunteers    []model.Volunteer
	hostLocations []model.HostLocation
	recipients    []model.Recipient

	audits []db.AssignmentAudit

	getErr    error
	updateErr error
	auditErr  error

	updateCalls int
}

func newMockStore(events ...*model.EventRequest) *mockStore {
	m := &mockStore{events: make(map[int64]*model.EventRequest)}
	for _, e := range events {
		if e.Version == 0 {
			e.Version = 1
		}
		m.events[e.ID] = e
	}
	return m
}

func (m *mockStore) GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	event, ok := m.events[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	snapshot := *event
	return &snapshot, nil
}

func (m *mockStore) ListEventRequests(ctx context.Context, statuses ...model.Status) ([]model.EventRequest, error) {
	var out []model.EventRequest
	for _, event := range m.events {
		if len(statuses) == 0 {
			out = append(out, *event)
			continue
		}
		for _, s := range statuses {
			if event.Status == s {
				out = append(out, *event)
				break
			}
		}
	}
	return out, nil
}

func (m *mockStore) CreateEventRequest(ctx context.Context, event *model.EventRequest) (int64, error) {
	id := int64(len(m.events) + 1)
	event.ID = id
	event.Version = 1
	event.Status = model.StatusNew
	m.events[id] = event
	return id, nil
}

func (m *mockStore) UpdateEventRequest(ctx context.Context, id int64, update db.EventRequestUpdate, expectedVersion int64) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	event, ok := m.events[id]
	if !ok {
		return db.ErrNotFound
	}
	if event.Version != expectedVersion {
		return db.ErrVersionConflict
	}

	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.ScheduledEventDate != nil {
		event.ScheduledEventDate = *update.ScheduledEventDate
	}
	if update.IsConfirmed != nil {
		event.IsConfirmed = *update.IsConfirmed
	}
	if update.Notes != nil {
		event.Notes = *update.Notes
	}
	if update.AssignedDriverIDs != nil {
		event.AssignedDriverIDs = *update.AssignedDriverIDs
	}
	if update.DriverDetails != nil {
		event.DriverDetails = *update.DriverDetails
	}
	if update.AssignedSpeakerIDs != nil {
		event.AssignedSpeakerIDs = *update.AssignedSpeakerIDs
	}
	if update.SpeakerDetails != nil {
		event.SpeakerDetails = *update.SpeakerDetails
	}
	if update.AssignedVolunteerIDs != nil {
		event.AssignedVolunteerIDs = *update.AssignedVolunteerIDs
	}
	if update.VolunteerDetails != nil {
		event.VolunteerDetails = *update.VolunteerDetails
	}
	if update.VanDriverID != nil {
		event.VanDriverID = *update.VanDriverID
	}
	if update.ToolkitSentAt != nil {
		event.ToolkitSentAt = update.ToolkitSentAt
	}
	if update.ToolkitSentBy != nil {
		event.ToolkitSentBy = *update.ToolkitSentBy
	}
	if update.PostponedAt != nil {
		event.PostponedAt = update.PostponedAt
	} else if update.ClearPostponedAt {
		event.PostponedAt = nil
	}

	event.Version++
	return nil
}

func (m *mockStore) InsertAssignmentAudits(ctx context.Context, audits []db.AssignmentAudit) error {
	if m.auditErr != nil {
		return m.auditErr
	}
	m.audits = append(m.audits, audits...)
	return nil
}

func (m *mockStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return m.users, nil
}

func (m *mockStore) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	return m.drivers, nil
}

func (m *mockStore) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	return m.volunteers, nil
}

func (m *mockStore) ListHostLocations(ctx context.Context) ([]model.HostLocation, error) {
	return m.hostLocations, nil
}

func (m *mockStore) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	return m.recipients, nil
}
