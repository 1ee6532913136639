package authorizer

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.UserService = (*UserService)(nil)
var _ pulseboard.InvitationService = (*InvitationService)(nil)

// UserService wraps a pulseboard.UserService and authorizes actions against
// it appropriately.
type UserService struct {
	s    pulseboard.UserService
	gate *Gate
}

// NewUserService constructs an instance of an authorizing user service.
func NewUserService(gate *Gate, s pulseboard.UserService) *UserService {
	return &UserService{
		s:    s,
		gate: gate,
	}
}

func (s *UserService) FindUserByID(ctx context.Context, id platform.ID) (*pulseboard.User, error) {
	return s.s.FindUserByID(ctx, id)
}

func (s *UserService) FindUser(ctx context.Context, filter pulseboard.UserFilter) (*pulseboard.User, error) {
	return s.s.FindUser(ctx, filter)
}

func (s *UserService) FindUsers(ctx context.Context, filter pulseboard.UserFilter) ([]*pulseboard.User, int, error) {
	return s.s.FindUsers(ctx, filter)
}

// CreateUser requires user management.
func (s *UserService) CreateUser(ctx context.Context, u *pulseboard.User) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return err
	}
	return s.s.CreateUser(ctx, u)
}

// UpdateUser requires user management.
func (s *UserService) UpdateUser(ctx context.Context, id platform.ID, upd pulseboard.UserUpdate) (*pulseboard.User, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return nil, err
	}
	return s.s.UpdateUser(ctx, id, upd)
}

// UpdateUserRole requires user management.
func (s *UserService) UpdateUserRole(ctx context.Context, id platform.ID, role pulseboard.Role) (*pulseboard.User, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return nil, err
	}
	return s.s.UpdateUserRole(ctx, id, role)
}

// DeleteUser requires user management.
func (s *UserService) DeleteUser(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return err
	}
	return s.s.DeleteUser(ctx, id)
}

// SetLastLogin is an internal bookkeeping write performed on the session's
// own behalf, so it passes through.
func (s *UserService) SetLastLogin(ctx context.Context, id platform.ID) error {
	return s.s.SetLastLogin(ctx, id)
}

func (s *UserService) HasPermission(ctx context.Context, capability string) (bool, error) {
	return s.s.HasPermission(ctx, capability)
}

// InvitationService wraps a pulseboard.InvitationService and authorizes
// actions against it appropriately.
type InvitationService struct {
	s    pulseboard.InvitationService
	gate *Gate
}

// NewInvitationService constructs an instance of an authorizing invitation service.
func NewInvitationService(gate *Gate, s pulseboard.InvitationService) *InvitationService {
	return &InvitationService{
		s:    s,
		gate: gate,
	}
}

// CreateInvitation requires user management.
func (s *InvitationService) CreateInvitation(ctx context.Context, inv *pulseboard.UserInvitation) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return err
	}
	return s.s.CreateInvitation(ctx, inv)
}

// AcceptInvitation is authorized by possession of the token; the invitee has
// no session yet.
func (s *InvitationService) AcceptInvitation(ctx context.Context, token, name string) (*pulseboard.User, error) {
	return s.s.AcceptInvitation(ctx, token, name)
}

func (s *InvitationService) FindInvitations(ctx context.Context, filter pulseboard.InvitationFilter) ([]*pulseboard.UserInvitation, int, error) {
	return s.s.FindInvitations(ctx, filter)
}
