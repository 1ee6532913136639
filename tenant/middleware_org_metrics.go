package tenant

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/metric"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.OrganizationService = (*OrgMetrics)(nil)

type OrgMetrics struct {
	// RED metrics
	rec *metric.REDClient

	orgService pulseboard.OrganizationService
}

// NewOrgMetrics returns a metrics service middleware for the Organization Service.
func NewOrgMetrics(reg prometheus.Registerer, s pulseboard.OrganizationService, opts ...metric.ClientOptFn) *OrgMetrics {
	o := metric.ApplyMetricOpts(opts...)
	return &OrgMetrics{
		rec:        metric.New(reg, o.ApplySuffix("org")),
		orgService: s,
	}
}

func (m *OrgMetrics) FindOrganizationByID(ctx context.Context, id platform.ID) (*pulseboard.Organization, error) {
	rec := m.rec.Record("find_org_by_id")
	org, err := m.orgService.FindOrganizationByID(ctx, id)
	return org, rec(err)
}

func (m *OrgMetrics) FindOrganizations(ctx context.Context, filter pulseboard.OrganizationFilter) ([]*pulseboard.Organization, int, error) {
	rec := m.rec.Record("find_orgs")
	orgs, n, err := m.orgService.FindOrganizations(ctx, filter)
	return orgs, n, rec(err)
}

func (m *OrgMetrics) CreateOrganization(ctx context.Context, o *pulseboard.Organization) error {
	rec := m.rec.Record("create_org")
	err := m.orgService.CreateOrganization(ctx, o)
	return rec(err)
}

func (m *OrgMetrics) UpdateOrganization(ctx context.Context, id platform.ID, upd pulseboard.OrganizationUpdate) (*pulseboard.Organization, error) {
	rec := m.rec.Record("update_org")
	org, err := m.orgService.UpdateOrganization(ctx, id, upd)
	return org, rec(err)
}

func (m *OrgMetrics) DeleteOrganization(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_org")
	err := m.orgService.DeleteOrganization(ctx, id)
	return rec(err)
}

func (m *OrgMetrics) SetActiveOrganization(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("set_active_org")
	err := m.orgService.SetActiveOrganization(ctx, id)
	return rec(err)
}

func (m *OrgMetrics) HasFeature(ctx context.Context, id platform.ID, flag string) (bool, error) {
	rec := m.rec.Record("has_feature")
	ok, err := m.orgService.HasFeature(ctx, id, flag)
	return ok, rec(err)
}

func (m *OrgMetrics) IsWithinLimit(ctx context.Context, id platform.ID, limitKey string, current int) (bool, error) {
	rec := m.rec.Record("is_within_limit")
	ok, err := m.orgService.IsWithinLimit(ctx, id, limitKey, current)
	return ok, rec(err)
}

func (m *OrgMetrics) AddMember(ctx context.Context, orgID, userID platform.ID) error {
	rec := m.rec.Record("add_member")
	err := m.orgService.AddMember(ctx, orgID, userID)
	return rec(err)
}

func (m *OrgMetrics) RemoveMember(ctx context.Context, orgID, userID platform.ID) error {
	rec := m.rec.Record("remove_member")
	err := m.orgService.RemoveMember(ctx, orgID, userID)
	return rec(err)
}
