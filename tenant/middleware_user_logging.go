package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"go.uber.org/zap"
)

type UserLogger struct {
	logger      *zap.Logger
	userService pulseboard.UserService
}

// NewUserLogger returns a logging service middleware for the User Service.
func NewUserLogger(log *zap.Logger, s pulseboard.UserService) *UserLogger {
	return &UserLogger{
		logger:      log,
		userService: s,
	}
}

var _ pulseboard.UserService = (*UserLogger)(nil)

func (l *UserLogger) FindUserByID(ctx context.Context, id platform.ID) (u *pulseboard.User, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find user with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("user find by ID", dur)
	}(time.Now())
	return l.userService.FindUserByID(ctx, id)
}

func (l *UserLogger) FindUser(ctx context.Context, filter pulseboard.UserFilter) (u *pulseboard.User, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find user matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("user find", dur)
	}(time.Now())
	return l.userService.FindUser(ctx, filter)
}

func (l *UserLogger) FindUsers(ctx context.Context, filter pulseboard.UserFilter) (us []*pulseboard.User, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find users matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("users find", dur)
	}(time.Now())
	return l.userService.FindUsers(ctx, filter)
}

func (l *UserLogger) CreateUser(ctx context.Context, u *pulseboard.User) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create user", zap.Error(err), dur)
			return
		}
		l.logger.Debug("user create", dur)
	}(time.Now())
	return l.userService.CreateUser(ctx, u)
}

func (l *UserLogger) UpdateUser(ctx context.Context, id platform.ID, upd pulseboard.UserUpdate) (u *pulseboard.User, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update user", zap.Error(err), dur)
			return
		}
		l.logger.Debug("user update", dur)
	}(time.Now())
	return l.userService.UpdateUser(ctx, id, upd)
}

func (l *UserLogger) UpdateUserRole(ctx context.Context, id platform.ID, role pulseboard.Role) (u *pulseboard.User, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to update role for user with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("user update role", dur)
	}(time.Now())
	return l.userService.UpdateUserRole(ctx, id, role)
}

func (l *UserLogger) DeleteUser(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete user with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("user delete", dur)
	}(time.Now())
	return l.userService.DeleteUser(ctx, id)
}

func (l *UserLogger) SetLastLogin(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to set last login for user with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("user set last login", dur)
	}(time.Now())
	return l.userService.SetLastLogin(ctx, id)
}

func (l *UserLogger) HasPermission(ctx context.Context, capability string) (ok bool, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to check permission %v", capability)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("user has permission", dur)
	}(time.Now())
	return l.userService.HasPermission(ctx, capability)
}

type InvitationLogger struct {
	logger            *zap.Logger
	invitationService pulseboard.InvitationService
}

// NewInvitationLogger returns a logging service middleware for the Invitation Service.
func NewInvitationLogger(log *zap.Logger, s pulseboard.InvitationService) *InvitationLogger {
	return &InvitationLogger{
		logger:            log,
		invitationService: s,
	}
}

var _ pulseboard.InvitationService = (*InvitationLogger)(nil)

func (l *InvitationLogger) CreateInvitation(ctx context.Context, inv *pulseboard.UserInvitation) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create invitation", zap.Error(err), dur)
			return
		}
		l.logger.Debug("invitation create", dur)
	}(time.Now())
	return l.invitationService.CreateInvitation(ctx, inv)
}

func (l *InvitationLogger) AcceptInvitation(ctx context.Context, token, name string) (u *pulseboard.User, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to accept invitation", zap.Error(err), dur)
			return
		}
		l.logger.Debug("invitation accept", dur)
	}(time.Now())
	return l.invitationService.AcceptInvitation(ctx, token, name)
}

func (l *InvitationLogger) FindInvitations(ctx context.Context, filter pulseboard.InvitationFilter) (invs []*pulseboard.UserInvitation, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find invitations matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("invitations find", dur)
	}(time.Now())
	return l.invitationService.FindInvitations(ctx, filter)
}
