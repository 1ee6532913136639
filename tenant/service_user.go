package tenant

import (
	"context"

	"github.com/pulseboard/pulseboard"
	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kv"
)

// FindUserByID returns a single user by ID.
func (s *Service) FindUserByID(ctx context.Context, id platform.ID) (*pulseboard.User, error) {
	var user *pulseboard.User
	err := s.store.View(ctx, func(tx kv.Tx) error {
		u, err := s.store.GetUser(ctx, tx, id)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindUser returns the first user that matches filter.
func (s *Service) FindUser(ctx context.Context, filter pulseboard.UserFilter) (*pulseboard.User, error) {
	if filter.ID != nil {
		return s.FindUserByID(ctx, *filter.ID)
	}

	if filter.Email != nil {
		var user *pulseboard.User
		err := s.store.View(ctx, func(tx kv.Tx) error {
			u, err := s.store.GetUserByEmail(ctx, tx, *filter.Email)
			if err != nil {
				return err
			}
			user = u
			return nil
		})
		if err != nil {
			return nil, err
		}
		return user, nil
	}

	users, _, err := s.FindUsers(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

// FindUsers returns users matching filter.
func (s *Service) FindUsers(ctx context.Context, filter pulseboard.UserFilter) ([]*pulseboard.User, int, error) {
	if filter.ID != nil {
		u, err := s.FindUserByID(ctx, *filter.ID)
		if err != nil {
			return nil, 0, err
		}
		return []*pulseboard.User{u}, 1, nil
	}

	var users []*pulseboard.User
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListUsers(ctx, tx)
		if err != nil {
			return err
		}
		for _, u := range all {
			if filter.Email != nil && u.Email != *filter.Email {
				continue
			}
			if filter.OrganizationID != nil && u.OrganizationID != *filter.OrganizationID {
				continue
			}
			if filter.Status != nil && u.Status != *filter.Status {
				continue
			}
			users = append(users, u)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return users, len(users), nil
}

// CreateUser creates a new user and sets u.ID. The permission set is always
// derived from the role; anything the caller supplied is discarded.
func (s *Service) CreateUser(ctx context.Context, u *pulseboard.User) error {
	if u.Email == "" {
		return ErrUserEmailEmpty
	}
	if u.Name == "" {
		return ErrUserNameEmpty
	}
	if u.Role == "" {
		u.Role = pulseboard.RoleViewer
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if u.Status == "" {
		u.Status = pulseboard.UserActive
	}

	u.ID = s.store.IDGen.ID()
	u.Permissions = pulseboard.RolePermissions(u.Role)
	u.CreatedAt = s.clock.Now()

	return s.store.Update(ctx, func(tx kv.Tx) error {
		if u.OrganizationID.Valid() {
			if _, err := s.store.GetOrg(ctx, tx, u.OrganizationID); err != nil {
				return err
			}
		}
		return s.store.CreateUser(ctx, tx, u)
	})
}

// UpdateUser updates a single user with a changeset. Email changes move the
// email index entry.
func (s *Service) UpdateUser(ctx context.Context, id platform.ID, upd pulseboard.UserUpdate) (*pulseboard.User, error) {
	var user *pulseboard.User
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		u, err := s.store.GetUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Status != nil {
			u.Status = *upd.Status
		}

		if upd.Email != nil && *upd.Email != u.Email {
			oldEmail := u.Email
			u.Email = *upd.Email
			if err := s.store.ReindexUserEmail(ctx, tx, u, oldEmail); err != nil {
				return err
			}
		} else if err := s.store.PutUser(ctx, tx, u); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserRole changes the user's role and recomputes the permission set.
func (s *Service) UpdateUserRole(ctx context.Context, id platform.ID, role pulseboard.Role) (*pulseboard.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var user *pulseboard.User
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		u, err := s.store.GetUser(ctx, tx, id)
		if err != nil {
			return err
		}
		u.Role = role
		u.Permissions = pulseboard.RolePermissions(role)
		if err := s.store.PutUser(ctx, tx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and drops its organization memberships.
func (s *Service) DeleteUser(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		u, err := s.store.GetUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if u.OrganizationID.Valid() {
			o, err := s.store.GetOrg(ctx, tx, u.OrganizationID)
			if err == nil {
				members := o.Members[:0]
				for _, m := range o.Members {
					if m != id {
						members = append(members, m)
					}
				}
				o.Members = members
				if err := s.store.PutOrg(ctx, tx, o); err != nil {
					return err
				}
			}
		}

		return s.store.DeleteUser(ctx, tx, id)
	})
}

// SetLastLogin stamps the user's last login time with the service clock.
func (s *Service) SetLastLogin(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		u, err := s.store.GetUser(ctx, tx, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		u.LastLogin = &now
		return s.store.PutUser(ctx, tx, u)
	})
}

// HasPermission reports whether the session user holds the named capability.
// A missing session or unknown user reports false without erroring.
func (s *Service) HasPermission(ctx context.Context, capability string) (bool, error) {
	sess, err := icontext.GetSession(ctx)
	if err != nil {
		return false, nil
	}

	allowed := false
	err = s.store.View(ctx, func(tx kv.Tx) error {
		u, err := s.store.GetUser(ctx, tx, sess.UserID)
		if err == ErrUserNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		allowed = u.Permissions.Allowed(capability)
		return nil
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}
