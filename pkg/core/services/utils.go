package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/communitykitchen/eventdesk/pkg/core/identity"
	"github.com/communitykitchen/eventdesk/pkg/core/model"
	"github.com/communitykitchen/eventdesk/pkg/core/recipient"
)

// DirectoryStore defines the reference-table reads needed to resolve
// participant display names
type DirectoryStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	ListHostLocations(ctx context.Context) ([]model.HostLocation, error)
}

// loadDirectory fetches every name-resolution table. Staffing display
// resolution is fail-open on lookup misses but a failed table read is a
// real error: the caller decides whether to proceed.
func loadDirectory(ctx context.Context, store DirectoryStore) (*identity.Directory, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	drivers, err := store.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load drivers: %w", err)
	}
	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load volunteers: %w", err)
	}
	locations, err := store.ListHostLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load host locations: %w", err)
	}

	return &identity.Directory{
		Users:         users,
		Drivers:       drivers,
		Volunteers:    volunteers,
		HostLocations: locations,
	}, nil
}

// RecipientTableStore defines the reads backing recipient resolution
type RecipientTableStore interface {
	ListHostLocations(ctx context.Context) ([]model.HostLocation, error)
	ListRecipients(ctx context.Context) ([]model.Recipient, error)
}

// loadRecipientTables fetches and flattens the recipient lookup tables.
// Tables loaded here are marked Loaded: the resolver's "still loading"
// state only arises for callers holding partially fetched caches.
func loadRecipientTables(ctx context.Context, store RecipientTableStore) (*recipient.Tables, error) {
	locations, err := store.ListHostLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load host locations: %w", err)
	}
	recipients, err := store.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}

	contacts := make([]model.HostContact, 0)
	for _, loc := range locations {
		contacts = append(contacts, loc.Contacts...)
	}

	return &recipient.Tables{
		HostContacts:        contacts,
		HostContactsLoaded:  true,
		HostLocations:       locations,
		HostLocationsLoaded: true,
		Recipients:          recipients,
		RecipientsLoaded:    true,
	}, nil
}

// joinNames renders a display-name list for roster cells
func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
