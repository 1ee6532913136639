package tenant

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kv"
)

// CreateInvitation creates a pending invitation with a fresh single-use token
// and a 7 day TTL, and sets inv.ID.
func (s *Service) CreateInvitation(ctx context.Context, inv *pulseboard.UserInvitation) error {
	if inv.Email == "" {
		return ErrUserEmailEmpty
	}
	if inv.Role == "" {
		inv.Role = pulseboard.RoleViewer
	}
	if !inv.Role.Valid() {
		return ErrInvalidRole
	}

	token, err := s.store.TokenGen.Token()
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	now := s.clock.Now()
	inv.ID = s.store.IDGen.ID()
	inv.Token = token
	inv.Status = pulseboard.InvitationPending
	inv.InvitedAt = now
	inv.ExpiresAt = now.Add(pulseboard.InvitationTTL)

	return s.store.Update(ctx, func(tx kv.Tx) error {
		if _, err := s.store.GetOrg(ctx, tx, inv.OrganizationID); err != nil {
			return err
		}
		return s.store.CreateInvitation(ctx, tx, inv)
	})
}

// AcceptInvitation consumes a pending invitation by token and creates the user
// it described. Expiry is detected here, not by a background sweep: a lapsed
// invitation is marked expired as a side effect and the accept fails.
func (s *Service) AcceptInvitation(ctx context.Context, token, name string) (*pulseboard.User, error) {
	if name == "" {
		return nil, ErrUserNameEmpty
	}

	var user *pulseboard.User
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		inv, err := s.store.GetInvitationByToken(ctx, tx, token)
		if err != nil {
			return err
		}

		if inv.Status != pulseboard.InvitationPending {
			return ErrInvitationNotPending
		}

		if s.clock.Now().After(inv.ExpiresAt) {
			inv.Status = pulseboard.InvitationExpired
			if err := s.store.PutInvitation(ctx, tx, inv); err != nil {
				return err
			}
			return ErrInvitationExpired
		}

		invitedBy := inv.InvitedBy
		u := &pulseboard.User{
			ID:             s.store.IDGen.ID(),
			Email:          inv.Email,
			Name:           name,
			Role:           inv.Role,
			OrganizationID: inv.OrganizationID,
			Status:         pulseboard.UserActive,
			Permissions:    pulseboard.RolePermissions(inv.Role),
			CreatedAt:      s.clock.Now(),
			InvitedBy:      &invitedBy,
		}
		if err := s.store.CreateUser(ctx, tx, u); err != nil {
			return err
		}

		if o, err := s.store.GetOrg(ctx, tx, inv.OrganizationID); err == nil {
			o.Members = append(o.Members, u.ID)
			if err := s.store.PutOrg(ctx, tx, o); err != nil {
				return err
			}
		}

		inv.Status = pulseboard.InvitationAccepted
		if err := s.store.PutInvitation(ctx, tx, inv); err != nil {
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

// FindInvitations returns invitations matching filter.
func (s *Service) FindInvitations(ctx context.Context, filter pulseboard.InvitationFilter) ([]*pulseboard.UserInvitation, int, error) {
	var invs []*pulseboard.UserInvitation
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListInvitations(ctx, tx)
		if err != nil {
			return err
		}
		for _, inv := range all {
			if filter.OrganizationID != nil && inv.OrganizationID != *filter.OrganizationID {
				continue
			}
			if filter.Status != nil && inv.Status != *filter.Status {
				continue
			}
			invs = append(invs, inv)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return invs, len(invs), nil
}
