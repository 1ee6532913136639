package pulseboard

import (
	"github.com/pulseboard/pulseboard/kit/platform"
)

// Session is the principal a request acts as: the tenant and organization it
// is scoped to and the user performing it. Sessions are issued by an external
// identity provider and attached to the request context; this core never
// mints or validates session secrets.
type Session struct {
	TenantID       platform.ID `json:"tenantId"`
	OrganizationID platform.ID `json:"organizationId"`
	UserID         platform.ID `json:"userId"`
}

// Valid reports whether all three principal IDs are set.
func (s Session) Valid() bool {
	return s.TenantID.Valid() && s.OrganizationID.Valid() && s.UserID.Valid()
}
