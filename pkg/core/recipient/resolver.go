// Package recipient resolves recipient references to display names and
// semantic kinds. Unlike staffing display resolution, recipient attribution
// feeds accounting, so the resolver distinguishes "tables still loading"
// from "loaded but absent" instead of guessing.
package recipient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// Kind is the semantic category of a resolved recipient reference
const (
	KindHost      = "host"
	KindRecipient = "recipient"
	KindCustom    = "custom"
	KindUnknown   = "unknown"
)

// Resolved is the outcome of resolving one reference. Loading sentinels and
// Unknown sentinels are distinguishable so the UI can render them apart.
type Resolved struct {
	Name string
	Kind string
}

// Tables are the three lookup sources a reference can point into. Each
// carries its own Loaded flag; a table that has not finished loading is not
// the same as an empty table.
type Tables struct {
	HostContacts       []model.HostContact
	HostContactsLoaded bool

	HostLocations       []model.HostLocation
	HostLocationsLoaded bool

	Recipients       []model.Recipient
	RecipientsLoaded bool
}

// AllLoaded reports whether every supporting table has finished loading
func (t *Tables) AllLoaded() bool {
	return t.HostContactsLoaded && t.HostLocationsLoaded && t.RecipientsLoaded
}

// Resolve maps a reference to a name and kind.
//
// Composite "<kind>:<id>" references resolve with cross-table fallback:
// host refs fall back through host locations to the legacy recipient table,
// recipient refs fall back the other way. Legacy bare numeric ids probe
// host locations, host contacts, then recipients, and require all three
// tables loaded first. Anything else is treated as an already-readable
// custom value.
func Resolve(ref string, tables *Tables) Resolved {
	if kind, value, ok := strings.Cut(ref, ":"); ok {
		return resolveComposite(kind, value, tables)
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return resolveBareID(id, tables)
	}

	return Resolved{Name: ref, Kind: KindCustom}
}

func resolveComposite(kind, value string, tables *Tables) Resolved {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// Non-numeric value: already human-readable
		return Resolved{Name: value, Kind: kind}
	}

	switch kind {
	case KindHost:
		if name, ok := tables.hostContactName(id); ok {
			return Resolved{Name: name, Kind: KindHost}
		}
		if name, ok := tables.hostLocationName(id); ok {
			return Resolved{Name: name, Kind: KindHost}
		}
		if name, ok := tables.recipientName(id); ok {
			return Resolved{Name: name, Kind: KindRecipient}
		}
		return Resolved{Name: fmt.Sprintf("Unknown Host (%d)", id), Kind: KindHost}
	case KindRecipient:
		if name, ok := tables.recipientName(id); ok {
			return Resolved{Name: name, Kind: KindRecipient}
		}
		if name, ok := tables.hostLocationName(id); ok {
			return Resolved{Name: name, Kind: KindHost}
		}
		if name, ok := tables.hostContactName(id); ok {
			return Resolved{Name: name, Kind: KindHost}
		}
		return Resolved{Name: fmt.Sprintf("Unknown Recipient (%d)", id), Kind: KindRecipient}
	default:
		return Resolved{Name: value, Kind: kind}
	}
}

// resolveBareID handles the legacy ambiguous bare-id format. The probe
// order is fixed: host locations, host contacts, recipients.
func resolveBareID(id int64, tables *Tables) Resolved {
	if !tables.AllLoaded() {
		return Resolved{Name: "Loading...", Kind: KindUnknown}
	}

	if name, ok := tables.hostLocationName(id); ok {
		return Resolved{Name: name, Kind: KindHost}
	}
	if name, ok := tables.hostContactName(id); ok {
		return Resolved{Name: name, Kind: KindHost}
	}
	if name, ok := tables.recipientName(id); ok {
		return Resolved{Name: name, Kind: KindRecipient}
	}

	return Resolved{Name: fmt.Sprintf("Unknown Recipient (%d)", id), Kind: KindRecipient}
}

func (t *Tables) hostContactName(id int64) (string, bool) {
	for _, contact := range t.HostContacts {
		if contact.ID != id {
			continue
		}
		name := strings.TrimSpace(strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName))
		if name == "" {
			name = contact.Name
		}
		if name == "" {
			name = contact.Email
		}
		if name == "" {
			name = fmt.Sprintf("Contact #%d", id)
		}
		return name, true
	}
	return "", false
}

func (t *Tables) hostLocationName(id int64) (string, bool) {
	for _, loc := range t.HostLocations {
		if loc.ID == id {
			return loc.Name, true
		}
	}
	return "", false
}

func (t *Tables) recipientName(id int64) (string, bool) {
	for _, rec := range t.Recipients {
		if rec.ID == id {
			return rec.Name, true
		}
	}
	return "", false
}
