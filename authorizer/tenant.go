package authorizer

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.TenantService = (*TenantService)(nil)

// TenantService wraps a pulseboard.TenantService and authorizes actions
// against it appropriately.
type TenantService struct {
	s    pulseboard.TenantService
	gate *Gate
}

// NewTenantService constructs an instance of an authorizing tenant service.
func NewTenantService(gate *Gate, s pulseboard.TenantService) *TenantService {
	return &TenantService{
		s:    s,
		gate: gate,
	}
}

func (s *TenantService) FindTenantByID(ctx context.Context, id platform.ID) (*pulseboard.Tenant, error) {
	return s.s.FindTenantByID(ctx, id)
}

func (s *TenantService) FindTenants(ctx context.Context, filter pulseboard.TenantFilter) ([]*pulseboard.Tenant, int, error) {
	return s.s.FindTenants(ctx, filter)
}

// CreateTenant requires admin access.
func (s *TenantService) CreateTenant(ctx context.Context, t *pulseboard.Tenant) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapAccessAdmin,
	}); err != nil {
		return err
	}
	return s.s.CreateTenant(ctx, t)
}

// UpdateTenant requires admin access.
func (s *TenantService) UpdateTenant(ctx context.Context, id platform.ID, upd pulseboard.TenantUpdate) (*pulseboard.Tenant, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapAccessAdmin,
	}); err != nil {
		return nil, err
	}
	return s.s.UpdateTenant(ctx, id, upd)
}

// SuspendTenant requires admin access.
func (s *TenantService) SuspendTenant(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapAccessAdmin,
	}); err != nil {
		return err
	}
	return s.s.SuspendTenant(ctx, id)
}

// ActivateTenant requires admin access.
func (s *TenantService) ActivateTenant(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapAccessAdmin,
	}); err != nil {
		return err
	}
	return s.s.ActivateTenant(ctx, id)
}

// DeleteTenant requires admin access.
func (s *TenantService) DeleteTenant(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapAccessAdmin,
	}); err != nil {
		return err
	}
	return s.s.DeleteTenant(ctx, id)
}

func (s *TenantService) CheckResourceLimit(ctx context.Context, id platform.ID, resource string) (*pulseboard.ResourceLimit, error) {
	return s.s.CheckResourceLimit(ctx, id, resource)
}

func (s *TenantService) ValidateTenantAccess(ctx context.Context, id, userID platform.ID) (bool, error) {
	return s.s.ValidateTenantAccess(ctx, id, userID)
}

func (s *TenantService) CheckModuleAccess(ctx context.Context, id platform.ID, module string) (bool, error) {
	return s.s.CheckModuleAccess(ctx, id, module)
}
