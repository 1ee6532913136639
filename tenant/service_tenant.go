package tenant

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kv"
)

// TrialPeriod is the default lifetime of a trial tenant when the caller does
// not provide an explicit expiry.
const TrialPeriod = 30 * 24 * time.Hour

// Default quotas for tenants created without an explicit features block.
const (
	DefaultMaxOrganizations = 5
	DefaultMaxUsers         = 25
	DefaultMaxStorageGB     = 10
)

// FindTenantByID returns a single tenant by ID.
func (s *Service) FindTenantByID(ctx context.Context, id platform.ID) (*pulseboard.Tenant, error) {
	var t *pulseboard.Tenant
	err := s.store.View(ctx, func(tx kv.Tx) error {
		tn, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}
		t = tn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FindTenants returns a list of tenants that match filter.
func (s *Service) FindTenants(ctx context.Context, filter pulseboard.TenantFilter) ([]*pulseboard.Tenant, int, error) {
	if filter.ID != nil {
		t, err := s.FindTenantByID(ctx, *filter.ID)
		if err != nil {
			return nil, 0, err
		}
		return []*pulseboard.Tenant{t}, 1, nil
	}

	if filter.Domain != nil {
		var t *pulseboard.Tenant
		err := s.store.View(ctx, func(tx kv.Tx) error {
			tn, err := s.store.GetTenantByDomain(ctx, tx, *filter.Domain)
			if err != nil {
				return err
			}
			t = tn
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
		return []*pulseboard.Tenant{t}, 1, nil
	}

	var ts []*pulseboard.Tenant
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListTenants(ctx, tx)
		if err != nil {
			return err
		}
		for _, t := range all {
			if filter.Status != nil && t.Status != *filter.Status {
				continue
			}
			ts = append(ts, t)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return ts, len(ts), nil
}

// CreateTenant creates a new tenant and sets t.ID with the new identifier.
// Fresh tenants default to a 30 day trial with the full module allowance.
func (s *Service) CreateTenant(ctx context.Context, t *pulseboard.Tenant) error {
	if t.Name == "" {
		return ErrTenantNameEmpty
	}

	t.ID = s.store.IDGen.ID()
	now := s.clock.Now()

	if t.Status == "" {
		t.Status = pulseboard.TenantTrial
	}
	if t.Plan == "" {
		t.Plan = pulseboard.PlanFree
	}
	if t.OrganizationIDs == nil {
		t.OrganizationIDs = []platform.ID{}
	}
	if t.Settings.Features.MaxOrganizations == 0 {
		t.Settings.Features.MaxOrganizations = DefaultMaxOrganizations
	}
	if t.Settings.Features.MaxUsers == 0 {
		t.Settings.Features.MaxUsers = DefaultMaxUsers
	}
	if t.Settings.Features.MaxStorageGB == 0 {
		t.Settings.Features.MaxStorageGB = DefaultMaxStorageGB
	}
	if t.Settings.Features.AllowedModules == nil {
		t.Settings.Features.AllowedModules = pulseboard.AllModules()
	}

	t.Metadata.CreatedAt = now
	t.Metadata.LastAccessAt = now
	if t.Status == pulseboard.TenantTrial && t.Metadata.ExpiresAt == nil {
		expiry := now.Add(TrialPeriod)
		t.Metadata.ExpiresAt = &expiry
	}

	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateTenant(ctx, tx, t)
	})
}

// UpdateTenant updates a single tenant with a changeset and returns the new
// state. Settings updates are last-write-wins.
func (s *Service) UpdateTenant(ctx context.Context, id platform.ID, upd pulseboard.TenantUpdate) (*pulseboard.Tenant, error) {
	var t *pulseboard.Tenant
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		tn, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			tn.Name = *upd.Name
		}
		if upd.Domain != nil && *upd.Domain != tn.Domain {
			if err := s.store.uniqueTenantDomain(ctx, tx, *upd.Domain); err != nil {
				return err
			}
			encodedID, err := tn.ID.Encode()
			if err != nil {
				return platform.ErrCorruptID(err)
			}
			if err := s.store.UpdateTenantDomain(ctx, tx, tn.Domain, *upd.Domain, encodedID); err != nil {
				return err
			}
			tn.Domain = *upd.Domain
		}
		if upd.Status != nil {
			tn.Status = *upd.Status
		}
		if upd.Plan != nil {
			tn.Plan = *upd.Plan
		}
		if upd.Settings != nil {
			tn.Settings = *upd.Settings
		}

		if err := s.store.PutTenant(ctx, tx, tn); err != nil {
			return err
		}
		t = tn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) setTenantStatus(ctx context.Context, id platform.ID, status pulseboard.TenantStatus) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		t, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}
		t.Status = status
		return s.store.PutTenant(ctx, tx, t)
	})
}

// SuspendTenant moves the tenant to suspended status.
func (s *Service) SuspendTenant(ctx context.Context, id platform.ID) error {
	return s.setTenantStatus(ctx, id, pulseboard.TenantSuspended)
}

// ActivateTenant moves the tenant to active status.
func (s *Service) ActivateTenant(ctx context.Context, id platform.ID) error {
	return s.setTenantStatus(ctx, id, pulseboard.TenantActive)
}

// DeleteTenant removes a tenant and the organizations nested under it.
func (s *Service) DeleteTenant(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		t, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, orgID := range t.OrganizationIDs {
			if err := s.store.DeleteOrg(ctx, tx, orgID); err != nil && err != ErrOrgNotFound {
				return err
			}
		}
		return s.store.DeleteTenant(ctx, tx, id)
	})
}

// CheckResourceLimit reports consumption of the named resource against the
// tenant quota. Storage accounting is allocation based: the sum of the
// storage limits granted to the tenant's organizations.
func (s *Service) CheckResourceLimit(ctx context.Context, id platform.ID, resource string) (*pulseboard.ResourceLimit, error) {
	var limit *pulseboard.ResourceLimit
	err := s.store.View(ctx, func(tx kv.Tx) error {
		t, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}

		var current, max int
		switch resource {
		case pulseboard.ResourceOrganizations:
			current = len(t.OrganizationIDs)
			max = t.Settings.Features.MaxOrganizations
		case pulseboard.ResourceUsers:
			max = t.Settings.Features.MaxUsers
			orgs := make(map[platform.ID]bool, len(t.OrganizationIDs))
			for _, orgID := range t.OrganizationIDs {
				orgs[orgID] = true
			}
			users, err := s.store.ListUsers(ctx, tx)
			if err != nil {
				return err
			}
			for _, u := range users {
				if orgs[u.OrganizationID] {
					current++
				}
			}
		case pulseboard.ResourceStorage:
			max = t.Settings.Features.MaxStorageGB
			for _, orgID := range t.OrganizationIDs {
				o, err := s.store.GetOrg(ctx, tx, orgID)
				if err != nil {
					continue
				}
				current += o.Settings.Limits.StorageGB
			}
		default:
			return UnknownResourceError(resource)
		}

		available := max - current
		if available < 0 {
			available = 0
		}
		limit = &pulseboard.ResourceLimit{Current: current, Max: max, Available: available}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return limit, nil
}

// ValidateTenantAccess reports whether userID may currently access the
// tenant. The check never errors on a missing tenant; absence is a denial.
// Successful access stamps lastAccessAt.
func (s *Service) ValidateTenantAccess(ctx context.Context, id, userID platform.ID) (bool, error) {
	allowed := false
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		t, err := s.store.GetTenant(ctx, tx, id)
		if err == ErrTenantNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		switch t.Status {
		case pulseboard.TenantActive:
		case pulseboard.TenantTrial:
			if t.Metadata.ExpiresAt != nil && s.clock.Now().After(*t.Metadata.ExpiresAt) {
				return nil
			}
		default:
			return nil
		}

		allowed = true
		t.Metadata.LastAccessAt = s.clock.Now()
		return s.store.PutTenant(ctx, tx, t)
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}

// CheckModuleAccess reports whether the named module is enabled for the tenant.
func (s *Service) CheckModuleAccess(ctx context.Context, id platform.ID, module string) (bool, error) {
	allowed := false
	err := s.store.View(ctx, func(tx kv.Tx) error {
		t, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, m := range t.Settings.Features.AllowedModules {
			if m == module {
				allowed = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}

// SetCurrentTenant persists the session's tenant selection, refusing tenants
// the session user may not access.
func (s *Service) SetCurrentTenant(ctx context.Context, id, userID platform.ID) error {
	ok, err := s.ValidateTenantAccess(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTenantNotFound
	}
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.PutCurrentTenant(ctx, tx, id)
	})
}

// CurrentTenant returns the persisted tenant selection, if any.
func (s *Service) CurrentTenant(ctx context.Context) (*pulseboard.Tenant, error) {
	var t *pulseboard.Tenant
	err := s.store.View(ctx, func(tx kv.Tx) error {
		id, err := s.store.GetCurrentTenant(ctx, tx)
		if err != nil {
			return err
		}
		if !id.Valid() {
			return ErrTenantNotFound
		}
		tn, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}
		t = tn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
