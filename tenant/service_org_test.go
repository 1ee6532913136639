package tenant_test

import (
	"context"
	"testing"

	"github.com/pulseboard/pulseboard"
	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/inmem"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/tenant"
)

func newOrgFixture(t *testing.T) (*tenant.Service, *pulseboard.Tenant) {
	t.Helper()

	svc, _ := newTestService(t)
	tn := &pulseboard.Tenant{Name: "acme", Status: pulseboard.TenantActive}
	if err := svc.CreateTenant(context.Background(), tn); err != nil {
		t.Fatal(err)
	}
	return svc, tn
}

func TestCreateOrganization(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	o := &pulseboard.Organization{TenantID: tn.ID, Name: "engineering"}
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}
	if !o.ID.Valid() {
		t.Fatal("expected organization ID to be set")
	}
	if o.Type != pulseboard.OrgTypeTeam {
		t.Fatalf("expected team type default, got %q", o.Type)
	}

	got, err := svc.FindTenantByID(ctx, tn.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.OrganizationIDs) != 1 || got.OrganizationIDs[0] != o.ID {
		t.Fatalf("expected organization registered on tenant, got %v", got.OrganizationIDs)
	}
}

func TestCreateOrganization_QuotaEnforced(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "tiny co"}
	tn.Settings.Features.MaxOrganizations = 1
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}

	if err := svc.CreateOrganization(ctx, &pulseboard.Organization{TenantID: tn.ID, Name: "first"}); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateOrganization(ctx, &pulseboard.Organization{TenantID: tn.ID, Name: "second"})
	if errors.ErrorCode(err) != errors.EConflict {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestCreateOrganization_DuplicateName(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	if err := svc.CreateOrganization(ctx, &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateOrganization(ctx, &pulseboard.Organization{TenantID: tn.ID, Name: "eng"})
	if errors.ErrorCode(err) != errors.EConflict {
		t.Fatalf("expected name conflict, got %v", err)
	}
}

func TestUpdateOrganization_CycleRejected(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	root := &pulseboard.Organization{TenantID: tn.ID, Name: "root"}
	if err := svc.CreateOrganization(ctx, root); err != nil {
		t.Fatal(err)
	}
	child := &pulseboard.Organization{TenantID: tn.ID, Name: "child", ParentID: &root.ID}
	if err := svc.CreateOrganization(ctx, child); err != nil {
		t.Fatal(err)
	}

	_, err := svc.UpdateOrganization(ctx, root.ID, pulseboard.OrganizationUpdate{ParentID: &child.ID})
	if err != tenant.ErrOrgCycle {
		t.Fatalf("expected cycle error, got %v", err)
	}

	_, err = svc.UpdateOrganization(ctx, root.ID, pulseboard.OrganizationUpdate{ParentID: &root.ID})
	if err != tenant.ErrOrgCycle {
		t.Fatalf("expected self-parent to be rejected, got %v", err)
	}
}

func TestDeleteOrganization_ReparentsChildren(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	root := &pulseboard.Organization{TenantID: tn.ID, Name: "root"}
	if err := svc.CreateOrganization(ctx, root); err != nil {
		t.Fatal(err)
	}
	middle := &pulseboard.Organization{TenantID: tn.ID, Name: "middle", ParentID: &root.ID}
	if err := svc.CreateOrganization(ctx, middle); err != nil {
		t.Fatal(err)
	}
	leaf := &pulseboard.Organization{TenantID: tn.ID, Name: "leaf", ParentID: &middle.ID}
	if err := svc.CreateOrganization(ctx, leaf); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteOrganization(ctx, middle.ID); err != nil {
		t.Fatal(err)
	}

	got, err := svc.FindOrganizationByID(ctx, leaf.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ParentID == nil || *got.ParentID != root.ID {
		t.Fatalf("expected leaf re-parented to root, got %v", got.ParentID)
	}

	tnAfter, err := svc.FindTenantByID(ctx, tn.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range tnAfter.OrganizationIDs {
		if id == middle.ID {
			t.Fatal("expected deleted organization removed from the tenant")
		}
	}
}

func TestSetActiveOrganization_RejectsForeignTenant(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	o := &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	sess := pulseboard.Session{
		TenantID:       platformID(t, "00000000000000f0"),
		OrganizationID: o.ID,
		UserID:         platformID(t, "00000000000000f1"),
	}
	err := svc.SetActiveOrganization(icontext.SetSession(ctx, sess), o.ID)
	if err != tenant.ErrOrgNotFound {
		t.Fatalf("expected cross-tenant switch to be refused, got %v", err)
	}
}

type brandingRecorder struct {
	applied []pulseboard.OrganizationBranding
}

func (b *brandingRecorder) ApplyBranding(_ context.Context, branding pulseboard.OrganizationBranding) {
	b.applied = append(b.applied, branding)
}

func TestSetActiveOrganization_AppliesBranding(t *testing.T) {
	st, err := tenant.NewStore(inmem.NewKVStore())
	if err != nil {
		t.Fatal(err)
	}
	recorder := &brandingRecorder{}
	svc := tenant.NewService(st, tenant.WithBrandingApplier(recorder))
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme", Status: pulseboard.TenantActive}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}
	o := &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}
	o.Settings.Branding.PrimaryColor = "#336699"
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	if err := svc.SetActiveOrganization(ctx, o.ID); err != nil {
		t.Fatal(err)
	}
	if len(recorder.applied) != 1 || recorder.applied[0].PrimaryColor != "#336699" {
		t.Fatalf("expected branding side effect, got %v", recorder.applied)
	}
}

func TestHasFeature(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	o := &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}
	o.Settings.Features.Dashboards = true
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	enabled, err := svc.HasFeature(ctx, o.ID, pulseboard.OrgFeatureDashboards)
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Fatal("expected dashboards feature enabled")
	}

	enabled, err = svc.HasFeature(ctx, o.ID, pulseboard.OrgFeatureAIInsights)
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Fatal("expected aiInsights feature disabled")
	}

	// missing orgs report false rather than erroring
	enabled, err = svc.HasFeature(ctx, platformID(t, "00000000000000ff"), pulseboard.OrgFeatureDashboards)
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Fatal("expected missing org to report false")
	}
}

func TestIsWithinLimit(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	o := &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}
	o.Settings.Limits.MaxDashboards = 5
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		current int
		want    bool
	}{
		{current: 4, want: true},
		{current: 5, want: false},
		{current: 6, want: false},
	} {
		within, err := svc.IsWithinLimit(ctx, o.ID, pulseboard.OrgLimitMaxDashboards, tc.current)
		if err != nil {
			t.Fatal(err)
		}
		if within != tc.want {
			t.Fatalf("current %d: expected within=%v, got %v", tc.current, tc.want, within)
		}
	}
}

func TestAddMember(t *testing.T) {
	svc, tn := newOrgFixture(t)
	ctx := context.Background()

	o := &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}
	o.Settings.Limits.MaxUsers = 1
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	u1 := &pulseboard.User{Email: "one@acme.example.com", Name: "One", OrganizationID: o.ID}
	u2 := &pulseboard.User{Email: "two@acme.example.com", Name: "Two", OrganizationID: o.ID}
	for _, u := range []*pulseboard.User{u1, u2} {
		if err := svc.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.AddMember(ctx, o.ID, u1.ID); err != nil {
		t.Fatal(err)
	}
	// adding the same member twice is a no-op
	if err := svc.AddMember(ctx, o.ID, u1.ID); err != nil {
		t.Fatal(err)
	}

	err := svc.AddMember(ctx, o.ID, u2.ID)
	if errors.ErrorCode(err) != errors.EConflict {
		t.Fatalf("expected member limit error, got %v", err)
	}

	if err := svc.RemoveMember(ctx, o.ID, u1.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddMember(ctx, o.ID, u2.ID); err != nil {
		t.Fatal(err)
	}
}
