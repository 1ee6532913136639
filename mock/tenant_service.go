package mock

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.TenantService = (*TenantService)(nil)

// TenantService is a mock implementation of pulseboard.TenantService.
type TenantService struct {
	FindTenantByIDFn       func(context.Context, platform.ID) (*pulseboard.Tenant, error)
	FindTenantsFn          func(context.Context, pulseboard.TenantFilter) ([]*pulseboard.Tenant, int, error)
	CreateTenantFn         func(context.Context, *pulseboard.Tenant) error
	UpdateTenantFn         func(context.Context, platform.ID, pulseboard.TenantUpdate) (*pulseboard.Tenant, error)
	SuspendTenantFn        func(context.Context, platform.ID) error
	ActivateTenantFn       func(context.Context, platform.ID) error
	DeleteTenantFn         func(context.Context, platform.ID) error
	CheckResourceLimitFn   func(context.Context, platform.ID, string) (*pulseboard.ResourceLimit, error)
	ValidateTenantAccessFn func(context.Context, platform.ID, platform.ID) (bool, error)
	CheckModuleAccessFn    func(context.Context, platform.ID, string) (bool, error)
}

// NewTenantService returns a mock TenantService where all methods return
// zero values.
func NewTenantService() *TenantService {
	return &TenantService{
		FindTenantByIDFn: func(context.Context, platform.ID) (*pulseboard.Tenant, error) { return nil, nil },
		FindTenantsFn: func(context.Context, pulseboard.TenantFilter) ([]*pulseboard.Tenant, int, error) {
			return nil, 0, nil
		},
		CreateTenantFn:   func(context.Context, *pulseboard.Tenant) error { return nil },
		UpdateTenantFn:   func(context.Context, platform.ID, pulseboard.TenantUpdate) (*pulseboard.Tenant, error) { return nil, nil },
		SuspendTenantFn:  func(context.Context, platform.ID) error { return nil },
		ActivateTenantFn: func(context.Context, platform.ID) error { return nil },
		DeleteTenantFn:   func(context.Context, platform.ID) error { return nil },
		CheckResourceLimitFn: func(context.Context, platform.ID, string) (*pulseboard.ResourceLimit, error) {
			return nil, nil
		},
		ValidateTenantAccessFn: func(context.Context, platform.ID, platform.ID) (bool, error) { return true, nil },
		CheckModuleAccessFn:    func(context.Context, platform.ID, string) (bool, error) { return true, nil },
	}
}

func (s *TenantService) FindTenantByID(ctx context.Context, id platform.ID) (*pulseboard.Tenant, error) {
	return s.FindTenantByIDFn(ctx, id)
}

func (s *TenantService) FindTenants(ctx context.Context, filter pulseboard.TenantFilter) ([]*pulseboard.Tenant, int, error) {
	return s.FindTenantsFn(ctx, filter)
}

func (s *TenantService) CreateTenant(ctx context.Context, t *pulseboard.Tenant) error {
	return s.CreateTenantFn(ctx, t)
}

func (s *TenantService) UpdateTenant(ctx context.Context, id platform.ID, upd pulseboard.TenantUpdate) (*pulseboard.Tenant, error) {
	return s.UpdateTenantFn(ctx, id, upd)
}

func (s *TenantService) SuspendTenant(ctx context.Context, id platform.ID) error {
	return s.SuspendTenantFn(ctx, id)
}

func (s *TenantService) ActivateTenant(ctx context.Context, id platform.ID) error {
	return s.ActivateTenantFn(ctx, id)
}

func (s *TenantService) DeleteTenant(ctx context.Context, id platform.ID) error {
	return s.DeleteTenantFn(ctx, id)
}

func (s *TenantService) CheckResourceLimit(ctx context.Context, id platform.ID, resource string) (*pulseboard.ResourceLimit, error) {
	return s.CheckResourceLimitFn(ctx, id, resource)
}

func (s *TenantService) ValidateTenantAccess(ctx context.Context, id, userID platform.ID) (bool, error) {
	return s.ValidateTenantAccessFn(ctx, id, userID)
}

func (s *TenantService) CheckModuleAccess(ctx context.Context, id platform.ID, module string) (bool, error) {
	return s.CheckModuleAccessFn(ctx, id, module)
}
