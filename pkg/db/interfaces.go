package db

import (
	"context"
	"errors"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

var (
	// ErrNotFound is returned when no record matches the given id
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a partial update carries a stale
	// expected version. Callers should re-fetch and retry.
	ErrVersionConflict = errors.New("event request was modified concurrently")
)

// EventRequestStore defines event request record operations
type EventRequestStore interface {
	GetEventRequest(ctx context.Context, id int64) (*model.EventRequest, error)
	ListEventRequests(ctx context.Context, statuses ...model.Status) ([]model.EventRequest, error)
	CreateEventRequest(ctx context.Context, event *model.EventRequest) (int64, error)
	// UpdateEventRequest applies a partial update if and only if the stored
	// version equals expectedVersion; otherwise ErrVersionConflict.
	UpdateEventRequest(ctx context.Context, id int64, update EventRequestUpdate, expectedVersion int64) error
	InsertAssignmentAudits(ctx context.Context, audits []AssignmentAudit) error
}

// ReferenceStore defines the independently loadable lookup tables
type ReferenceStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	ListHostLocations(ctx context.Context) ([]model.HostLocation, error)
	ListRecipients(ctx context.Context) ([]model.Recipient, error)
}
