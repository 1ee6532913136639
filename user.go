package pulseboard

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/kit/platform"
)

// Role is the coarse access level of a user. Permissions are always derived
// from the role; they are never edited independently.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// UserStatus defines the lifecycle state of a user.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserPending  UserStatus = "pending"
)

// Capability names checked by the authorization gate.
const (
	CapViewDashboards  = "canViewDashboards"
	CapEditDashboards  = "canEditDashboards"
	CapManageUsers     = "canManageUsers"
	CapManageSettings  = "canManageSettings"
	CapExportData      = "canExportData"
	CapScheduleReports = "canScheduleReports"
	CapAccessAdmin     = "canAccessAdmin"
	CapViewComments    = "canViewComments"
	CapAddComments     = "canAddComments"
	CapDeleteComments  = "canDeleteComments"
)

// UserPermissions is the capability set derived from a role.
type UserPermissions struct {
	CanViewDashboards  bool `json:"canViewDashboards"`
	CanEditDashboards  bool `json:"canEditDashboards"`
	CanManageUsers     bool `json:"canManageUsers"`
	CanManageSettings  bool `json:"canManageSettings"`
	CanExportData      bool `json:"canExportData"`
	CanScheduleReports bool `json:"canScheduleReports"`
	CanAccessAdmin     bool `json:"canAccessAdmin"`
	CanViewComments    bool `json:"canViewComments"`
	CanAddComments     bool `json:"canAddComments"`
	CanDeleteComments  bool `json:"canDeleteComments"`
}

// Allowed reports whether the named capability is granted.
func (p UserPermissions) Allowed(capability string) bool {
	switch capability {
	case CapViewDashboards:
		return p.CanViewDashboards
	case CapEditDashboards:
		return p.CanEditDashboards
	case CapManageUsers:
		return p.CanManageUsers
	case CapManageSettings:
		return p.CanManageSettings
	case CapExportData:
		return p.CanExportData
	case CapScheduleReports:
		return p.CanScheduleReports
	case CapAccessAdmin:
		return p.CanAccessAdmin
	case CapViewComments:
		return p.CanViewComments
	case CapAddComments:
		return p.CanAddComments
	case CapDeleteComments:
		return p.CanDeleteComments
	}
	return false
}

// RolePermissions is the canonical role to permission-set mapping. It is a
// pure total function: every role (including unknown ones, which get the
// empty set) maps to a deterministic permission set.
func RolePermissions(r Role) UserPermissions {
	var p UserPermissions
	switch r {
	case RoleAdmin:
		p.CanManageUsers = true
		p.CanManageSettings = true
		p.CanAccessAdmin = true
		p.CanDeleteComments = true
		fallthrough
	case RoleEditor:
		p.CanEditDashboards = true
		p.CanExportData = true
		p.CanScheduleReports = true
		p.CanAddComments = true
		fallthrough
	case RoleViewer:
		p.CanViewDashboards = true
		p.CanViewComments = true
	}
	return p
}

// User is a member of an organization.
type User struct {
	ID             platform.ID     `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Role           Role            `json:"role"`
	OrganizationID platform.ID     `json:"organizationId"`
	Status         UserStatus      `json:"status"`
	Permissions    UserPermissions `json:"permissions"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastLogin      *time.Time      `json:"lastLogin,omitempty"`
	InvitedBy      *platform.ID    `json:"invitedBy,omitempty"`
}

// InvitationStatus defines the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// InvitationTTL is how long an invitation stays acceptable.
const InvitationTTL = 7 * 24 * time.Hour

// UserInvitation is a pending offer to join an organization. Expiry is
// detected lazily when the invitation is used, not swept in the background.
type UserInvitation struct {
	ID             platform.ID      `json:"id"`
	Email          string           `json:"email"`
	Role           Role             `json:"role"`
	OrganizationID platform.ID      `json:"organizationId"`
	InvitedBy      platform.ID      `json:"invitedBy"`
	InvitedAt      time.Time        `json:"invitedAt"`
	ExpiresAt      time.Time        `json:"expiresAt"`
	Status         InvitationStatus `json:"status"`
	Token          string           `json:"token"`
}

// UserUpdate is a patch applied to a user. Role changes recompute the
// permission set; the Permissions field cannot be patched directly.
type UserUpdate struct {
	Name   *string     `json:"name,omitempty"`
	Email  *string     `json:"email,omitempty"`
	Status *UserStatus `json:"status,omitempty"`
}

// UserFilter selects users in FindUsers.
type UserFilter struct {
	ID             *platform.ID
	Email          *string
	OrganizationID *platform.ID
	Status         *UserStatus
}

// InvitationFilter selects invitations in FindInvitations.
type InvitationFilter struct {
	OrganizationID *platform.ID
	Status         *InvitationStatus
}

// UserService is the user and role directory.
type UserService interface {
	// FindUserByID returns a single user by ID.
	FindUserByID(ctx context.Context, id platform.ID) (*User, error)

	// FindUser returns the first user that matches filter.
	FindUser(ctx context.Context, filter UserFilter) (*User, error)

	// FindUsers returns users matching filter.
	FindUsers(ctx context.Context, filter UserFilter) ([]*User, int, error)

	// CreateUser creates a user and sets u.ID. Permissions are derived from
	// u.Role regardless of what the caller supplied.
	CreateUser(ctx context.Context, u *User) error

	// UpdateUser updates a single user with a changeset.
	UpdateUser(ctx context.Context, id platform.ID, upd UserUpdate) (*User, error)

	// UpdateUserRole changes a user's role and recomputes the permission
	// set from RolePermissions.
	UpdateUserRole(ctx context.Context, id platform.ID, role Role) (*User, error)

	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, id platform.ID) error

	// SetLastLogin stamps the user's last login time.
	SetLastLogin(ctx context.Context, id platform.ID) error

	// HasPermission reports whether the current session user holds the
	// named capability. There is no delegated or impersonation path.
	HasPermission(ctx context.Context, capability string) (bool, error)
}

// InvitationService manages pending user invitations.
type InvitationService interface {
	// CreateInvitation creates a pending invitation with a fresh token and
	// a 7 day TTL, and sets inv.ID.
	CreateInvitation(ctx context.Context, inv *UserInvitation) error

	// AcceptInvitation consumes a pending invitation by token, creating the
	// user it described. Unknown, consumed and expired tokens all fail;
	// expired invitations are marked expired as a side effect.
	AcceptInvitation(ctx context.Context, token, name string) (*User, error)

	// FindInvitations returns invitations matching filter.
	FindInvitations(ctx context.Context, filter InvitationFilter) ([]*UserInvitation, int, error)
}
