package tenant

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/metric"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.UserService = (*UserMetrics)(nil)
var _ pulseboard.InvitationService = (*InvitationMetrics)(nil)

type UserMetrics struct {
	// RED metrics
	rec *metric.REDClient

	userService pulseboard.UserService
}

// NewUserMetrics returns a metrics service middleware for the User Service.
func NewUserMetrics(reg prometheus.Registerer, s pulseboard.UserService, opts ...metric.ClientOptFn) *UserMetrics {
	o := metric.ApplyMetricOpts(opts...)
	return &UserMetrics{
		rec:         metric.New(reg, o.ApplySuffix("user")),
		userService: s,
	}
}

func (m *UserMetrics) FindUserByID(ctx context.Context, id platform.ID) (*pulseboard.User, error) {
	rec := m.rec.Record("find_user_by_id")
	user, err := m.userService.FindUserByID(ctx, id)
	return user, rec(err)
}

func (m *UserMetrics) FindUser(ctx context.Context, filter pulseboard.UserFilter) (*pulseboard.User, error) {
	rec := m.rec.Record("find_user")
	user, err := m.userService.FindUser(ctx, filter)
	return user, rec(err)
}

func (m *UserMetrics) FindUsers(ctx context.Context, filter pulseboard.UserFilter) ([]*pulseboard.User, int, error) {
	rec := m.rec.Record("find_users")
	users, n, err := m.userService.FindUsers(ctx, filter)
	return users, n, rec(err)
}

func (m *UserMetrics) CreateUser(ctx context.Context, u *pulseboard.User) error {
	rec := m.rec.Record("create_user")
	err := m.userService.CreateUser(ctx, u)
	return rec(err)
}

func (m *UserMetrics) UpdateUser(ctx context.Context, id platform.ID, upd pulseboard.UserUpdate) (*pulseboard.User, error) {
	rec := m.rec.Record("update_user")
	updatedUser, err := m.userService.UpdateUser(ctx, id, upd)
	return updatedUser, rec(err)
}

func (m *UserMetrics) UpdateUserRole(ctx context.Context, id platform.ID, role pulseboard.Role) (*pulseboard.User, error) {
	rec := m.rec.Record("update_user_role")
	updatedUser, err := m.userService.UpdateUserRole(ctx, id, role)
	return updatedUser, rec(err)
}

func (m *UserMetrics) DeleteUser(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_user")
	err := m.userService.DeleteUser(ctx, id)
	return rec(err)
}

func (m *UserMetrics) SetLastLogin(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("set_last_login")
	err := m.userService.SetLastLogin(ctx, id)
	return rec(err)
}

func (m *UserMetrics) HasPermission(ctx context.Context, capability string) (bool, error) {
	rec := m.rec.Record("has_permission")
	ok, err := m.userService.HasPermission(ctx, capability)
	return ok, rec(err)
}

type InvitationMetrics struct {
	// RED metrics
	rec *metric.REDClient

	invitationService pulseboard.InvitationService
}

// NewInvitationMetrics returns a metrics service middleware for the Invitation Service.
func NewInvitationMetrics(reg prometheus.Registerer, s pulseboard.InvitationService, opts ...metric.ClientOptFn) *InvitationMetrics {
	o := metric.ApplyMetricOpts(opts...)
	return &InvitationMetrics{
		rec:               metric.New(reg, o.ApplySuffix("invitation")),
		invitationService: s,
	}
}

func (m *InvitationMetrics) CreateInvitation(ctx context.Context, inv *pulseboard.UserInvitation) error {
	rec := m.rec.Record("create_invitation")
	err := m.invitationService.CreateInvitation(ctx, inv)
	return rec(err)
}

func (m *InvitationMetrics) AcceptInvitation(ctx context.Context, token, name string) (*pulseboard.User, error) {
	rec := m.rec.Record("accept_invitation")
	user, err := m.invitationService.AcceptInvitation(ctx, token, name)
	return user, rec(err)
}

func (m *InvitationMetrics) FindInvitations(ctx context.Context, filter pulseboard.InvitationFilter) ([]*pulseboard.UserInvitation, int, error) {
	rec := m.rec.Record("find_invitations")
	invs, n, err := m.invitationService.FindInvitations(ctx, filter)
	return invs, n, rec(err)
}
