package tenant

import (
	"context"

	"github.com/pulseboard/pulseboard"
	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kv"
)

// FindOrganizationByID returns a single organization by ID.
func (s *Service) FindOrganizationByID(ctx context.Context, id platform.ID) (*pulseboard.Organization, error) {
	var org *pulseboard.Organization
	err := s.store.View(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return err
		}
		org = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

// FindOrganizations returns organizations matching filter. Filtering on
// ParentID yields the children of a node.
func (s *Service) FindOrganizations(ctx context.Context, filter pulseboard.OrganizationFilter) ([]*pulseboard.Organization, int, error) {
	if filter.ID != nil {
		o, err := s.FindOrganizationByID(ctx, *filter.ID)
		if err != nil {
			return nil, 0, err
		}
		return []*pulseboard.Organization{o}, 1, nil
	}

	var orgs []*pulseboard.Organization
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListOrgs(ctx, tx)
		if err != nil {
			return err
		}
		for _, o := range all {
			if filter.TenantID != nil && o.TenantID != *filter.TenantID {
				continue
			}
			if filter.ParentID != nil && (o.ParentID == nil || *o.ParentID != *filter.ParentID) {
				continue
			}
			if filter.Name != nil && o.Name != *filter.Name {
				continue
			}
			orgs = append(orgs, o)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return orgs, len(orgs), nil
}

// CreateOrganization creates a new organization under its tenant and sets
// o.ID. The tenant's maxOrganizations quota is enforced here.
func (s *Service) CreateOrganization(ctx context.Context, o *pulseboard.Organization) error {
	if o.Name == "" {
		return ErrOrgNameEmpty
	}
	if o.Type == "" {
		o.Type = pulseboard.OrgTypeTeam
	}

	return s.store.Update(ctx, func(tx kv.Tx) error {
		t, err := s.store.GetTenant(ctx, tx, o.TenantID)
		if err != nil {
			return err
		}

		if max := t.Settings.Features.MaxOrganizations; len(t.OrganizationIDs) >= max {
			return OrgQuotaExceededError(max)
		}

		if o.ParentID != nil {
			parent, err := s.store.GetOrg(ctx, tx, *o.ParentID)
			if err != nil {
				return InvalidOrgParentError("parent organization does not exist")
			}
			if parent.TenantID != o.TenantID {
				return InvalidOrgParentError("parent belongs to a different tenant")
			}
		}

		o.ID = s.store.IDGen.ID()
		o.CreatedAt = s.clock.Now()
		if o.Members == nil {
			o.Members = []platform.ID{}
		}

		if err := s.store.CreateOrg(ctx, tx, o); err != nil {
			return err
		}

		t.OrganizationIDs = append(t.OrganizationIDs, o.ID)
		return s.store.PutTenant(ctx, tx, t)
	})
}

// hasAncestor walks the parent chain from startID looking for targetID.
func (s *Service) hasAncestor(ctx context.Context, tx kv.Tx, startID, targetID platform.ID) (bool, error) {
	seen := map[platform.ID]bool{}
	id := startID
	for {
		if id == targetID {
			return true, nil
		}
		if seen[id] {
			// existing corruption, stop rather than loop forever
			return false, ErrOrgCycle
		}
		seen[id] = true

		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if o.ParentID == nil {
			return false, nil
		}
		id = *o.ParentID
	}
}

// UpdateOrganization updates a single organization with a changeset.
// Settings updates are last-write-wins; re-parenting is cycle-checked.
func (s *Service) UpdateOrganization(ctx context.Context, id platform.ID, upd pulseboard.OrganizationUpdate) (*pulseboard.Organization, error) {
	var org *pulseboard.Organization
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return err
		}

		if upd.ParentID != nil {
			parent, err := s.store.GetOrg(ctx, tx, *upd.ParentID)
			if err != nil {
				return InvalidOrgParentError("parent organization does not exist")
			}
			if parent.TenantID != o.TenantID {
				return InvalidOrgParentError("parent belongs to a different tenant")
			}
			cyclic, err := s.hasAncestor(ctx, tx, *upd.ParentID, id)
			if err != nil {
				return err
			}
			if cyclic {
				return ErrOrgCycle
			}
			o.ParentID = upd.ParentID
		}
		if upd.Type != nil {
			o.Type = *upd.Type
		}
		if upd.Settings != nil {
			o.Settings = *upd.Settings
		}

		if upd.Name != nil && *upd.Name != o.Name {
			oldName := o.Name
			o.Name = *upd.Name
			if err := s.store.RenameOrg(ctx, tx, o, oldName); err != nil {
				return err
			}
		} else if err := s.store.PutOrg(ctx, tx, o); err != nil {
			return err
		}

		org = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

// DeleteOrganization removes an organization. Children are re-parented to
// the deleted node's parent so the forest stays intact.
func (s *Service) DeleteOrganization(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return err
		}

		all, err := s.store.ListOrgs(ctx, tx)
		if err != nil {
			return err
		}
		for _, child := range all {
			if child.ParentID == nil || *child.ParentID != id {
				continue
			}
			child.ParentID = o.ParentID
			if err := s.store.PutOrg(ctx, tx, child); err != nil {
				return err
			}
		}

		t, err := s.store.GetTenant(ctx, tx, o.TenantID)
		if err == nil {
			ids := t.OrganizationIDs[:0]
			for _, orgID := range t.OrganizationIDs {
				if orgID != id {
					ids = append(ids, orgID)
				}
			}
			t.OrganizationIDs = ids
			if err := s.store.PutTenant(ctx, tx, t); err != nil {
				return err
			}
		}

		return s.store.DeleteOrg(ctx, tx, id)
	})
}

// SetActiveOrganization switches the session's active organization, persists
// the selection and triggers the branding side effect.
func (s *Service) SetActiveOrganization(ctx context.Context, id platform.ID) error {
	var org *pulseboard.Organization
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return err
		}
		if sess, err := icontext.GetSession(ctx); err == nil && sess.TenantID != o.TenantID {
			return ErrOrgNotFound
		}
		if err := s.store.PutCurrentOrganization(ctx, tx, id); err != nil {
			return err
		}
		org = o
		return nil
	})
	if err != nil {
		return err
	}

	// cosmetic side effect, outcome does not gate the switch
	if s.branding != nil {
		s.branding.ApplyBranding(ctx, org.Settings.Branding)
	}
	return nil
}

// ActiveOrganization returns the persisted active organization, if any.
func (s *Service) ActiveOrganization(ctx context.Context) (*pulseboard.Organization, error) {
	var org *pulseboard.Organization
	err := s.store.View(ctx, func(tx kv.Tx) error {
		id, err := s.store.GetCurrentOrganization(ctx, tx)
		if err != nil {
			return err
		}
		if !id.Valid() {
			return ErrOrgNotFound
		}
		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return err
		}
		org = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

// HasFeature reports whether the organization has the named feature flag
// enabled. Unknown organizations report false rather than erroring so the
// gate can treat absence as a denial.
func (s *Service) HasFeature(ctx context.Context, id platform.ID, flag string) (bool, error) {
	enabled := false
	err := s.store.View(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, id)
		if err == ErrOrgNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		enabled = o.Settings.Features.Enabled(flag)
		return nil
	})
	if err != nil {
		return false, err
	}
	return enabled, nil
}

// IsWithinLimit reports whether current consumption is strictly below the
// organization's named limit.
func (s *Service) IsWithinLimit(ctx context.Context, id platform.ID, limitKey string, current int) (bool, error) {
	within := false
	err := s.store.View(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, id)
		if err != nil {
			return err
		}
		within = current < o.Settings.Limits.Limit(limitKey)
		return nil
	})
	if err != nil {
		return false, err
	}
	return within, nil
}

// AddMember adds a user to the organization, bounded by the maxUsers limit.
// A zero limit means unlimited.
func (s *Service) AddMember(ctx context.Context, orgID, userID platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, orgID)
		if err != nil {
			return err
		}
		if _, err := s.store.GetUser(ctx, tx, userID); err != nil {
			return err
		}
		for _, m := range o.Members {
			if m == userID {
				return nil
			}
		}
		if max := o.Settings.Limits.MaxUsers; max > 0 && len(o.Members) >= max {
			return MemberLimitExceededError(max)
		}
		o.Members = append(o.Members, userID)
		return s.store.PutOrg(ctx, tx, o)
	})
}

// RemoveMember removes a user from the organization.
func (s *Service) RemoveMember(ctx context.Context, orgID, userID platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		o, err := s.store.GetOrg(ctx, tx, orgID)
		if err != nil {
			return err
		}
		members := o.Members[:0]
		for _, m := range o.Members {
			if m != userID {
				members = append(members, m)
			}
		}
		o.Members = members
		return s.store.PutOrg(ctx, tx, o)
	})
}
