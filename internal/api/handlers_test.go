package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/db"
)

type apiStore struct {
	events    map[int64]*model.EventRequest
	drivers   []model.Driver
	updateErr error
}

func (m *apiStore) GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	snapshot := *event
	return &snapshot, nil
}

func (m *apiStore) ListEventRequests(ctx context.Context, statuses ...model.Status) ([]model.EventRequest, error) {
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

func (m *apiStore) CreateEventRequest(ctx context.Context, event *model.EventRequest) (int64, error) {
	event.ID = int64(len(m.events) + 1)
	m.events[event.ID] = event
	return event.ID, nil
}

func (m *apiStore) UpdateEventRequest(ctx context.Context, id int64, update db.EventRequestUpdate, expectedVersion int64) error {
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
	if update.AssignedDriverIDs != nil {
		event.AssignedDriverIDs = *update.AssignedDriverIDs
	}
	if update.DriverDetails != nil {
		event.DriverDetails = *update.DriverDetails
	}
	if update.VanDriverID != nil {
		event.VanDriverID = *update.VanDriverID
	}
	event.Version++
	return nil
}

func (m *apiStore) InsertAssignmentAudits(ctx context.Context, audits []db.AssignmentAudit) error {
	return nil
}

func (m *apiStore) ListUsers(ctx context.Context) ([]model.User, error)       { return nil, nil }
func (m *apiStore) ListDrivers(ctx context.Context) ([]model.Driver, error)   { return m.drivers, nil }
func (m *apiStore) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	return nil, nil
}
func (m *apiStore) ListHostLocations(ctx context.Context) ([]model.HostLocation, error) {
	return nil, nil
}
func (m *apiStore) ListRecipients(ctx context.Context) ([]model.Recipient, error) {
	return nil, nil
}

func newTestServer(store *apiStore) *Server {
	server := NewServer(store, &config.Config{
		RosterSheetID: "sheet-1",
		RosterTab:     "Roster",
		GmailUserID:   "coordinator@example.org",
	}, zap.NewNop())
	server.now = func() time.Time {
		return time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)
	}
	return server
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestGetRequest(t *testing.T) {
	store := &apiStore{events: map[int64]*model.EventRequest{
		1: {ID: 1, Version: 1, Status: model.StatusNew, OrganizerName: "Dana"},
	}}
	server := newTestServer(store)

	recorder := doRequest(t, server, "GET", "/api/event-requests/1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var event model.EventRequest
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &event))
	assert.Equal(t, "Dana", event.OrganizerName)
	assert.Equal(t, model.StatusNew, event.Status)
}

func TestGetRequest_NotFound(t *testing.T) {
	server := newTestServer(&apiStore{events: map[int64]*model.EventRequest{}})

	recorder := doRequest(t, server, "GET", "/api/event-requests/404", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListRequests_StatusFilter(t *testing.T) {
	store := &apiStore{events: map[int64]*model.EventRequest{
		1: {ID: 1, Version: 1, Status: model.StatusNew},
		2: {ID: 2, Version: 1, Status: model.StatusScheduled},
	}}
	server := newTestServer(store)

	recorder := doRequest(t, server, "GET", "/api/event-requests?status=scheduled", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var events []model.EventRequest
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].ID)

	recorder = doRequest(t, server, "GET", "/api/event-requests?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAssign(t *testing.T) {
	store := &apiStore{
		events: map[int64]*model.EventRequest{
			1: {ID: 1, Version: 1, Status: model.StatusInProcess},
		},
		drivers: []model.Driver{{ID: 42, Name: "Bob the Driver"}},
	}
	server := newTestServer(store)

	recorder := doRequest(t, server, "POST", "/api/event-requests/1/assignments", assignRequest{
		Role:           "driver",
		ParticipantIDs: []string{"42"},
		Actor:          "admin-1",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"42"}, store.events[1].AssignedDriverIDs)
}

func TestAssign_InvalidRole(t *testing.T) {
	store := &apiStore{events: map[int64]*model.EventRequest{
		1: {ID: 1, Version: 1},
	}}
	server := newTestServer(store)

	recorder := doRequest(t, server, "POST", "/api/event-requests/1/assignments", assignRequest{
		Role:           "chaperone",
		ParticipantIDs: []string{"42"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestAssign_VersionConflict(t *testing.T) {
	store := &apiStore{
		events: map[int64]*model.EventRequest{
			1: {ID: 1, Version: 1, Status: model.StatusInProcess},
		},
		updateErr: db.ErrVersionConflict,
	}
	server := newTestServer(store)

	recorder := doRequest(t, server, "POST", "/api/event-requests/1/assignments", assignRequest{
		Role:           "driver",
		ParticipantIDs: []string{"42"},
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestChangeStatusEndpoint(t *testing.T) {
	store := &apiStore{events: map[int64]*model.EventRequest{
		1: {ID: 1, Version: 1, Status: model.StatusInProcess},
	}}
	server := newTestServer(store)

	recorder := doRequest(t, server, "POST", "/api/event-requests/1/status", statusRequest{
		Action:             "schedule",
		ScheduledEventDate: "2025-06-14",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, model.StatusScheduled, store.events[1].Status)

	// Completed requests reject further transitions
	store.events[1].Status = model.StatusCompleted
	recorder = doRequest(t, server, "POST", "/api/event-requests/1/status", statusRequest{
		Action: "postpone",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestSetVanDriverEndpoint(t *testing.T) {
	store := &apiStore{events: map[int64]*model.EventRequest{
		1: {ID: 1, Version: 1, Status: model.StatusScheduled},
	}}
	server := newTestServer(store)

	recorder := doRequest(t, server, "PUT", "/api/event-requests/1/van-driver", vanDriverRequest{DriverID: "77"})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "77", store.events[1].VanDriverID)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(&apiStore{events: map[int64]*model.EventRequest{}})

	recorder := doRequest(t, server, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
