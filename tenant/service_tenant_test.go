package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/inmem"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/tenant"
)

func newTestService(t *testing.T) (*tenant.Service, *clock.Mock) {
	t.Helper()

	st, err := tenant.NewStore(inmem.NewKVStore())
	if err != nil {
		t.Fatal(err)
	}
	mock := clock.NewMock()
	return tenant.NewService(st, tenant.WithClock(mock)), mock
}

func TestCreateTenant_Defaults(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme", Domain: "acme.example.com"}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}

	if !tn.ID.Valid() {
		t.Fatal("expected tenant ID to be set")
	}
	if tn.Status != pulseboard.TenantTrial {
		t.Fatalf("expected trial status, got %q", tn.Status)
	}
	if tn.Plan != pulseboard.PlanFree {
		t.Fatalf("expected free plan, got %q", tn.Plan)
	}
	if got := tn.Settings.Features.MaxOrganizations; got != tenant.DefaultMaxOrganizations {
		t.Fatalf("expected default org quota, got %d", got)
	}
	if len(tn.Settings.Features.AllowedModules) != len(pulseboard.AllModules()) {
		t.Fatalf("expected full module allowance, got %v", tn.Settings.Features.AllowedModules)
	}
	if tn.Metadata.ExpiresAt == nil {
		t.Fatal("expected trial expiry to be set")
	}
	if want := mock.Now().Add(tenant.TrialPeriod); !tn.Metadata.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, tn.Metadata.ExpiresAt)
	}
}

func TestCreateTenant_EmptyName(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.CreateTenant(context.Background(), &pulseboard.Tenant{})
	if err != tenant.ErrTenantNameEmpty {
		t.Fatalf("expected empty name error, got %v", err)
	}
}

func TestCreateTenant_DuplicateDomain(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.CreateTenant(ctx, &pulseboard.Tenant{Name: "one", Domain: "shared.example.com"}); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateTenant(ctx, &pulseboard.Tenant{Name: "two", Domain: "shared.example.com"})
	if errors.ErrorCode(err) != errors.EConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestFindTenants_StatusFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	active := &pulseboard.Tenant{Name: "active co", Status: pulseboard.TenantActive}
	trial := &pulseboard.Tenant{Name: "trial co"}
	for _, tn := range []*pulseboard.Tenant{active, trial} {
		if err := svc.CreateTenant(ctx, tn); err != nil {
			t.Fatal(err)
		}
	}

	status := pulseboard.TenantActive
	ts, n, err := svc.FindTenants(ctx, pulseboard.TenantFilter{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || ts[0].ID != active.ID {
		t.Fatalf("expected only the active tenant, got %d results", n)
	}
}

func TestSuspendAndActivateTenant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme"}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}

	if err := svc.SuspendTenant(ctx, tn.ID); err != nil {
		t.Fatal(err)
	}
	got, err := svc.FindTenantByID(ctx, tn.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != pulseboard.TenantSuspended {
		t.Fatalf("expected suspended, got %q", got.Status)
	}

	if err := svc.ActivateTenant(ctx, tn.ID); err != nil {
		t.Fatal(err)
	}
	got, err = svc.FindTenantByID(ctx, tn.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != pulseboard.TenantActive {
		t.Fatalf("expected active, got %q", got.Status)
	}
}

func TestDeleteTenant_RemovesOrganizations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme"}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}
	o := &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteTenant(ctx, tn.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.FindTenantByID(ctx, tn.ID); err != tenant.ErrTenantNotFound {
		t.Fatalf("expected tenant not found, got %v", err)
	}
	if _, err := svc.FindOrganizationByID(ctx, o.ID); err != tenant.ErrOrgNotFound {
		t.Fatalf("expected org not found, got %v", err)
	}
}

func TestCheckResourceLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme"}
	tn.Settings.Features.MaxOrganizations = 3
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateOrganization(ctx, &pulseboard.Organization{TenantID: tn.ID, Name: "eng"}); err != nil {
		t.Fatal(err)
	}

	limit, err := svc.CheckResourceLimit(ctx, tn.ID, pulseboard.ResourceOrganizations)
	if err != nil {
		t.Fatal(err)
	}
	if limit.Current != 1 || limit.Max != 3 || limit.Available != 2 {
		t.Fatalf("unexpected limit %+v", limit)
	}
	if limit.Current+limit.Available != limit.Max {
		t.Fatalf("limit accounting does not add up: %+v", limit)
	}

	if _, err := svc.CheckResourceLimit(ctx, tn.ID, "gadgets"); errors.ErrorCode(err) != errors.EInvalid {
		t.Fatalf("expected invalid resource error, got %v", err)
	}
}

func TestValidateTenantAccess(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	userID := platformID(t, "0000000000000099")

	t.Run("active tenant", func(t *testing.T) {
		tn := &pulseboard.Tenant{Name: "active co", Status: pulseboard.TenantActive}
		if err := svc.CreateTenant(ctx, tn); err != nil {
			t.Fatal(err)
		}
		ok, err := svc.ValidateTenantAccess(ctx, tn.ID, userID)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected access to an active tenant")
		}
	})

	t.Run("suspended tenant", func(t *testing.T) {
		tn := &pulseboard.Tenant{Name: "suspended co", Status: pulseboard.TenantSuspended}
		if err := svc.CreateTenant(ctx, tn); err != nil {
			t.Fatal(err)
		}
		ok, err := svc.ValidateTenantAccess(ctx, tn.ID, userID)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected no access to a suspended tenant")
		}
	})

	t.Run("trial expires lazily", func(t *testing.T) {
		tn := &pulseboard.Tenant{Name: "trial co"}
		if err := svc.CreateTenant(ctx, tn); err != nil {
			t.Fatal(err)
		}

		ok, err := svc.ValidateTenantAccess(ctx, tn.ID, userID)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("expected access while the trial is running")
		}

		mock.Add(tenant.TrialPeriod + 1)

		ok, err = svc.ValidateTenantAccess(ctx, tn.ID, userID)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected no access after the trial lapsed")
		}
	})

	t.Run("missing tenant", func(t *testing.T) {
		ok, err := svc.ValidateTenantAccess(ctx, platformID(t, "00000000000000aa"), userID)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatal("expected no access to a missing tenant")
		}
	})
}

func TestCheckModuleAccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme"}
	tn.Settings.Features.AllowedModules = []string{pulseboard.ModuleDashboards, pulseboard.ModuleKPIs}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}

	ok, err := svc.CheckModuleAccess(ctx, tn.ID, pulseboard.ModuleKPIs)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected kpis module to be allowed")
	}

	ok, err = svc.CheckModuleAccess(ctx, tn.ID, pulseboard.ModuleDataSources)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected datasources module to be denied")
	}
}

func TestTenantTimestamps_SurviveStorage(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	// sub-second precision must survive the JSON encoding
	mock.Add(3*time.Hour + 123456789*time.Nanosecond)

	tn := &pulseboard.Tenant{Name: "acme", Domain: "acme.example.com"}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}

	got, err := svc.FindTenantByID(ctx, tn.ID)
	if err != nil {
		t.Fatal(err)
	}

	if !got.Metadata.CreatedAt.Equal(tn.Metadata.CreatedAt) {
		t.Fatalf("createdAt changed across storage: %v != %v", got.Metadata.CreatedAt, tn.Metadata.CreatedAt)
	}
	if got.Metadata.ExpiresAt == nil || !got.Metadata.ExpiresAt.Equal(*tn.Metadata.ExpiresAt) {
		t.Fatalf("expiresAt changed across storage: %v != %v", got.Metadata.ExpiresAt, tn.Metadata.ExpiresAt)
	}
}
