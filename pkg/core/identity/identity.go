// Package identity defines the tagged-string scheme used to reference any
// person who can be staffed on an event request, and resolves those tags to
// display names against the loaded reference tables.
//
// Resolution is fail-open: a lookup miss degrades to the raw identifier or a
// role placeholder so callers always have something to render.
package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/communitykitchen/eventdesk/pkg/core/model"
)

// Kind discriminates the five participant identifier kinds
type Kind string

const (
	KindCustom      Kind = "custom"
	KindHostContact Kind = "host_contact"
	KindVolunteer   Kind = "volunteer"
	KindDriver      Kind = "driver"
	KindUser        Kind = "user"
)

const (
	customPrefix      = "custom-"
	hostContactPrefix = "host-contact-"
	volunteerPrefix   = "volunteer-"
)

// Ref is a parsed participant identifier. Raw is the stored string form;
// NumericID is set for the kinds that embed a numeric id.
type Ref struct {
	Kind      Kind
	NumericID int64
	Raw       string
}

// Parse classifies a raw identifier by shape, checking prefixes in
// precedence order. A bare numeric string is ambiguous by shape alone and is
// classified by the role it is being assigned under: drivers get
// KindDriver, every other role gets KindUser.
func Parse(raw string, role model.Role) Ref {
	switch {
	case strings.HasPrefix(raw, customPrefix):
		return Ref{Kind: KindCustom, Raw: raw}
	case strings.HasPrefix(raw, hostContactPrefix):
		return Ref{Kind: KindHostContact, NumericID: trailingID(raw, hostContactPrefix), Raw: raw}
	case strings.HasPrefix(raw, volunteerPrefix):
		return Ref{Kind: KindVolunteer, NumericID: trailingID(raw, volunteerPrefix), Raw: raw}
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && raw != "" {
		if role == model.RoleDriver {
			return Ref{Kind: KindDriver, NumericID: id, Raw: raw}
		}
		return Ref{Kind: KindUser, NumericID: id, Raw: raw}
	}

	return Ref{Kind: KindUser, Raw: raw}
}

func trailingID(raw, prefix string) int64 {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, prefix), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// CustomName recovers the display name embedded in a custom identifier of
// the form custom-<timestamp>-<slug>. The slug's dashes become spaces.
// An empty slug falls back to a role default label.
func CustomName(raw string, role model.Role) string {
	parts := strings.Split(raw, "-")
	if len(parts) > 2 {
		name := strings.TrimSpace(strings.Join(parts[2:], " "))
		if name != "" {
			return name
		}
	}
	return defaultCustomLabel(role)
}

func defaultCustomLabel(role model.Role) string {
	switch role {
	case model.RoleDriver:
		return "Custom Driver"
	case model.RoleSpeaker:
		return "Custom Speaker"
	default:
		return "Custom Volunteer"
	}
}

// Directory holds the reference tables needed to resolve display names
type Directory struct {
	Users         []model.User
	Drivers       []model.Driver
	Volunteers    []model.Volunteer
	HostLocations []model.HostLocation
}

// DisplayName resolves a parsed identifier to something renderable. Every
// miss falls back to the raw identifier or a placeholder, never an error.
func (d *Directory) DisplayName(ref Ref, role model.Role) string {
	switch ref.Kind {
	case KindCustom:
		return CustomName(ref.Raw, role)
	case KindHostContact:
		return d.hostContactName(ref)
	case KindVolunteer:
		return d.volunteerName(ref)
	case KindDriver:
		return d.driverName(ref)
	default:
		return d.userName(ref)
	}
}

// Resolve parses and resolves in one step
func (d *Directory) Resolve(raw string, role model.Role) string {
	return d.DisplayName(Parse(raw, role), role)
}

func (d *Directory) hostContactName(ref Ref) string {
	for _, loc := range d.HostLocations {
		for _, contact := range loc.Contacts {
			if contact.ID != ref.NumericID {
				continue
			}
			if name := combineName(contact.FirstName, contact.LastName); name != "" {
				return name
			}
			if contact.Name != "" {
				return contact.Name
			}
			if contact.Email != "" {
				return contact.Email
			}
			return fmt.Sprintf("Contact #%d", ref.NumericID)
		}
	}
	return ref.Raw
}

func (d *Directory) volunteerName(ref Ref) string {
	for _, vol := range d.Volunteers {
		if vol.ID != ref.NumericID {
			continue
		}
		if name := combineName(vol.FirstName, vol.LastName); name != "" {
			return name
		}
		if vol.Name != "" {
			return vol.Name
		}
		return "Unknown Volunteer"
	}
	return ref.Raw
}

func (d *Directory) driverName(ref Ref) string {
	for _, driver := range d.Drivers {
		if driver.ID == ref.NumericID && driver.Name != "" {
			return driver.Name
		}
	}
	return ref.Raw
}

func (d *Directory) userName(ref Ref) string {
	for _, user := range d.Users {
		if user.ID != ref.Raw {
			continue
		}
		if name := combineName(user.FirstName, user.LastName); name != "" {
			return name
		}
	}
	return ref.Raw
}

func combineName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
