package mock

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.UserService = (*UserService)(nil)
var _ pulseboard.InvitationService = (*InvitationService)(nil)

// UserService is a mock implementation of pulseboard.UserService.
type UserService struct {
	FindUserByIDFn   func(context.Context, platform.ID) (*pulseboard.User, error)
	FindUserFn       func(context.Context, pulseboard.UserFilter) (*pulseboard.User, error)
	FindUsersFn      func(context.Context, pulseboard.UserFilter) ([]*pulseboard.User, int, error)
	CreateUserFn     func(context.Context, *pulseboard.User) error
	UpdateUserFn     func(context.Context, platform.ID, pulseboard.UserUpdate) (*pulseboard.User, error)
	UpdateUserRoleFn func(context.Context, platform.ID, pulseboard.Role) (*pulseboard.User, error)
	DeleteUserFn     func(context.Context, platform.ID) error
	SetLastLoginFn   func(context.Context, platform.ID) error
	HasPermissionFn  func(context.Context, string) (bool, error)
}

// NewUserService returns a mock UserService where all methods return zero
// values.
func NewUserService() *UserService {
	return &UserService{
		FindUserByIDFn: func(context.Context, platform.ID) (*pulseboard.User, error) { return nil, nil },
		FindUserFn:     func(context.Context, pulseboard.UserFilter) (*pulseboard.User, error) { return nil, nil },
		FindUsersFn: func(context.Context, pulseboard.UserFilter) ([]*pulseboard.User, int, error) {
			return nil, 0, nil
		},
		CreateUserFn:     func(context.Context, *pulseboard.User) error { return nil },
		UpdateUserFn:     func(context.Context, platform.ID, pulseboard.UserUpdate) (*pulseboard.User, error) { return nil, nil },
		UpdateUserRoleFn: func(context.Context, platform.ID, pulseboard.Role) (*pulseboard.User, error) { return nil, nil },
		DeleteUserFn:     func(context.Context, platform.ID) error { return nil },
		SetLastLoginFn:   func(context.Context, platform.ID) error { return nil },
		HasPermissionFn:  func(context.Context, string) (bool, error) { return true, nil },
	}
}

func (s *UserService) FindUserByID(ctx context.Context, id platform.ID) (*pulseboard.User, error) {
	return s.FindUserByIDFn(ctx, id)
}

func (s *UserService) FindUser(ctx context.Context, filter pulseboard.UserFilter) (*pulseboard.User, error) {
	return s.FindUserFn(ctx, filter)
}

func (s *UserService) FindUsers(ctx context.Context, filter pulseboard.UserFilter) ([]*pulseboard.User, int, error) {
	return s.FindUsersFn(ctx, filter)
}

func (s *UserService) CreateUser(ctx context.Context, u *pulseboard.User) error {
	return s.CreateUserFn(ctx, u)
}

func (s *UserService) UpdateUser(ctx context.Context, id platform.ID, upd pulseboard.UserUpdate) (*pulseboard.User, error) {
	return s.UpdateUserFn(ctx, id, upd)
}

func (s *UserService) UpdateUserRole(ctx context.Context, id platform.ID, role pulseboard.Role) (*pulseboard.User, error) {
	return s.UpdateUserRoleFn(ctx, id, role)
}

func (s *UserService) DeleteUser(ctx context.Context, id platform.ID) error {
	return s.DeleteUserFn(ctx, id)
}

func (s *UserService) SetLastLogin(ctx context.Context, id platform.ID) error {
	return s.SetLastLoginFn(ctx, id)
}

func (s *UserService) HasPermission(ctx context.Context, capability string) (bool, error) {
	return s.HasPermissionFn(ctx, capability)
}

// InvitationService is a mock implementation of pulseboard.InvitationService.
type InvitationService struct {
	CreateInvitationFn func(context.Context, *pulseboard.UserInvitation) error
	AcceptInvitationFn func(context.Context, string, string) (*pulseboard.User, error)
	FindInvitationsFn  func(context.Context, pulseboard.InvitationFilter) ([]*pulseboard.UserInvitation, int, error)
}

// NewInvitationService returns a mock InvitationService where all methods
// return zero values.
func NewInvitationService() *InvitationService {
	return &InvitationService{
		CreateInvitationFn: func(context.Context, *pulseboard.UserInvitation) error { return nil },
		AcceptInvitationFn: func(context.Context, string, string) (*pulseboard.User, error) { return nil, nil },
		FindInvitationsFn: func(context.Context, pulseboard.InvitationFilter) ([]*pulseboard.UserInvitation, int, error) {
			return nil, 0, nil
		},
	}
}

func (s *InvitationService) CreateInvitation(ctx context.Context, inv *pulseboard.UserInvitation) error {
	return s.CreateInvitationFn(ctx, inv)
}

func (s *InvitationService) AcceptInvitation(ctx context.Context, token, name string) (*pulseboard.User, error) {
	return s.AcceptInvitationFn(ctx, token, name)
}

func (s *InvitationService) FindInvitations(ctx context.Context, filter pulseboard.InvitationFilter) ([]*pulseboard.UserInvitation, int, error) {
	return s.FindInvitationsFn(ctx, filter)
}
