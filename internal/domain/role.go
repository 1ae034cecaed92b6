package domain

import "fmt"

// Role is the closed set of account roles. A profile carries exactly one.
type Role string

const (
	// RoleSuperAdmin is the platform owner: user blocking and organizer approval.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleInstitution is an event organizer, gated by admin approval.
	RoleInstitution Role = "INSTITUTION"
	// RoleUser is an attendee.
	RoleUser Role = "USER"
)

// AllRoles lists every role. Adding a role means adding it here and to capabilitiesOf.
var AllRoles = []Role{RoleSuperAdmin, RoleInstitution, RoleUser}

type capabilities struct {
	label         string
	publishEvents bool
	scanTickets   bool
	administer    bool
}

func capabilitiesOf(r Role) (capabilities, bool) {
	switch r {
	case RoleSuperAdmin:
		return capabilities{label: "Super Admin", administer: true}, true
	case RoleInstitution:
		return capabilities{label: "Event Organizer", publishEvents: true, scanTickets: true}, true
	case RoleUser:
		return capabilities{label: "Registered User"}, true
	}
	return capabilities{}, false
}

// ParseRole converts s into a Role, rejecting anything outside AllRoles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
	return r, nil
}

// Valid reports whether r is one of AllRoles.
func (r Role) Valid() bool {
	_, ok := capabilitiesOf(r)
	return ok
}

// Label is the display name of the role.
func (r Role) Label() string {
	c, _ := capabilitiesOf(r)
	return c.label
}

// CanPublishEvents reports whether the role may create events.
func (r Role) CanPublishEvents() bool {
	c, _ := capabilitiesOf(r)
	return c.publishEvents
}

// CanScanTickets reports whether the role may validate tickets at the door.
func (r Role) CanScanTickets() bool {
	c, _ := capabilitiesOf(r)
	return c.scanTickets
}

// CanAdminister reports whether the role may block users and decide organizer requests.
func (r Role) CanAdminister() bool {
	c, _ := capabilitiesOf(r)
	return c.administer
}
