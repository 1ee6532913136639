package tenant

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/metric"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.TenantService = (*TenantMetrics)(nil)

type TenantMetrics struct {
	// RED metrics
	rec *metric.REDClient

	tenantService pulseboard.TenantService
}

// NewTenantMetrics returns a metrics service middleware for the Tenant Service.
func NewTenantMetrics(reg prometheus.Registerer, s pulseboard.TenantService, opts ...metric.ClientOptFn) *TenantMetrics {
	o := metric.ApplyMetricOpts(opts...)
	return &TenantMetrics{
		rec:           metric.New(reg, o.ApplySuffix("tenant")),
		tenantService: s,
	}
}

func (m *TenantMetrics) FindTenantByID(ctx context.Context, id platform.ID) (*pulseboard.Tenant, error) {
	rec := m.rec.Record("find_tenant_by_id")
	t, err := m.tenantService.FindTenantByID(ctx, id)
	return t, rec(err)
}

func (m *TenantMetrics) FindTenants(ctx context.Context, filter pulseboard.TenantFilter) ([]*pulseboard.Tenant, int, error) {
	rec := m.rec.Record("find_tenants")
	ts, n, err := m.tenantService.FindTenants(ctx, filter)
	return ts, n, rec(err)
}

func (m *TenantMetrics) CreateTenant(ctx context.Context, t *pulseboard.Tenant) error {
	rec := m.rec.Record("create_tenant")
	err := m.tenantService.CreateTenant(ctx, t)
	return rec(err)
}

func (m *TenantMetrics) UpdateTenant(ctx context.Context, id platform.ID, upd pulseboard.TenantUpdate) (*pulseboard.Tenant, error) {
	rec := m.rec.Record("update_tenant")
	t, err := m.tenantService.UpdateTenant(ctx, id, upd)
	return t, rec(err)
}

func (m *TenantMetrics) SuspendTenant(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("suspend_tenant")
	err := m.tenantService.SuspendTenant(ctx, id)
	return rec(err)
}

func (m *TenantMetrics) ActivateTenant(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("activate_tenant")
	err := m.tenantService.ActivateTenant(ctx, id)
	return rec(err)
}

func (m *TenantMetrics) DeleteTenant(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_tenant")
	err := m.tenantService.DeleteTenant(ctx, id)
	return rec(err)
}

func (m *TenantMetrics) CheckResourceLimit(ctx context.Context, id platform.ID, resource string) (*pulseboard.ResourceLimit, error) {
	rec := m.rec.Record("check_resource_limit")
	limit, err := m.tenantService.CheckResourceLimit(ctx, id, resource)
	return limit, rec(err)
}

func (m *TenantMetrics) ValidateTenantAccess(ctx context.Context, id, userID platform.ID) (bool, error) {
	rec := m.rec.Record("validate_tenant_access")
	ok, err := m.tenantService.ValidateTenantAccess(ctx, id, userID)
	return ok, rec(err)
}

func (m *TenantMetrics) CheckModuleAccess(ctx context.Context, id platform.ID, module string) (bool, error) {
	rec := m.rec.Record("check_module_access")
	ok, err := m.tenantService.CheckModuleAccess(ctx, id, module)
	return ok, rec(err)
}
