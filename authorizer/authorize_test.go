package authorizer_test

import (
	"context"
	"testing"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/authorizer"
	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/mock"
)

var testSession = pulseboard.Session{
	TenantID:       platform.ID(1),
	OrganizationID: platform.ID(2),
	UserID:         platform.ID(3),
}

func sessionContext() context.Context {
	return icontext.SetSession(context.Background(), testSession)
}

func allowAllGate() (*authorizer.Gate, *mock.TenantService, *mock.OrganizationService, *mock.UserService) {
	tenants := mock.NewTenantService()
	orgs := mock.NewOrganizationService()
	users := mock.NewUserService()
	return authorizer.NewGate(tenants, orgs, users), tenants, orgs, users
}

func fullRequirement() authorizer.Requirement {
	return authorizer.Requirement{
		Module:     pulseboard.ModuleKPIs,
		Feature:    pulseboard.OrgFeatureDashboards,
		Capability: pulseboard.CapEditDashboards,
	}
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()

	if errors.ErrorCode(err) != errors.EForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	// denials never leak the reason in the message
	if got := errors.ErrorMessage(err); got != "forbidden" {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestGate_AllChecksPass(t *testing.T) {
	gate, _, _, _ := allowAllGate()

	if err := gate.Authorize(sessionContext(), fullRequirement()); err != nil {
		t.Fatal(err)
	}
}

func TestGate_MissingSession(t *testing.T) {
	gate, _, _, _ := allowAllGate()

	assertForbidden(t, gate.Authorize(context.Background(), fullRequirement()))
}

func TestGate_IncompleteSession(t *testing.T) {
	gate, _, _, _ := allowAllGate()

	partial := pulseboard.Session{TenantID: platform.ID(1)}
	ctx := icontext.SetSession(context.Background(), partial)
	assertForbidden(t, gate.Authorize(ctx, fullRequirement()))
}

func TestGate_TenantInaccessible(t *testing.T) {
	gate, tenants, _, _ := allowAllGate()
	tenants.ValidateTenantAccessFn = func(context.Context, platform.ID, platform.ID) (bool, error) {
		return false, nil
	}

	assertForbidden(t, gate.Authorize(sessionContext(), fullRequirement()))
}

func TestGate_ModuleDenied(t *testing.T) {
	gate, tenants, _, _ := allowAllGate()
	tenants.CheckModuleAccessFn = func(context.Context, platform.ID, string) (bool, error) {
		return false, nil
	}

	assertForbidden(t, gate.Authorize(sessionContext(), fullRequirement()))
}

func TestGate_FeatureDisabled(t *testing.T) {
	gate, _, orgs, _ := allowAllGate()
	orgs.HasFeatureFn = func(context.Context, platform.ID, string) (bool, error) {
		return false, nil
	}

	assertForbidden(t, gate.Authorize(sessionContext(), fullRequirement()))
}

func TestGate_CapabilityDenied(t *testing.T) {
	gate, _, _, users := allowAllGate()
	users.HasPermissionFn = func(context.Context, string) (bool, error) {
		return false, nil
	}

	assertForbidden(t, gate.Authorize(sessionContext(), fullRequirement()))
}

func TestGate_EmptyRequirementSkipsChecks(t *testing.T) {
	gate, _, orgs, users := allowAllGate()
	// these would deny if consulted
	orgs.HasFeatureFn = func(context.Context, platform.ID, string) (bool, error) {
		return false, nil
	}
	users.HasPermissionFn = func(context.Context, string) (bool, error) {
		return false, nil
	}

	if err := gate.Authorize(sessionContext(), authorizer.Requirement{}); err != nil {
		t.Fatal(err)
	}
}

func TestGate_ActiveOrganizationOverridesSession(t *testing.T) {
	gate, _, orgs, _ := allowAllGate()

	var consulted platform.ID
	orgs.HasFeatureFn = func(_ context.Context, id platform.ID, _ string) (bool, error) {
		consulted = id
		return true, nil
	}

	activeOrg := platform.ID(77)
	ctx := icontext.SetActiveOrganization(sessionContext(), activeOrg)
	if err := gate.Authorize(ctx, fullRequirement()); err != nil {
		t.Fatal(err)
	}
	if consulted != activeOrg {
		t.Fatalf("expected feature check against the active org, got %v", consulted)
	}
}

func TestKPIService_MutationsGated(t *testing.T) {
	gate, _, _, users := allowAllGate()
	users.HasPermissionFn = func(context.Context, string) (bool, error) {
		return false, nil
	}

	underlying := mock.NewKPIService()
	svc := authorizer.NewKPIService(gate, underlying)
	ctx := sessionContext()

	if err := svc.CreateKPIConfig(ctx, &pulseboard.KPIConfig{Name: "x"}); errors.ErrorCode(err) != errors.EForbidden {
		t.Fatalf("expected create to be gated, got %v", err)
	}
	if _, err := svc.UpdateKPIConfig(ctx, platform.ID(1), pulseboard.KPIConfigUpdate{}); errors.ErrorCode(err) != errors.EForbidden {
		t.Fatalf("expected update to be gated, got %v", err)
	}
	if err := svc.DeleteKPIConfig(ctx, platform.ID(1)); errors.ErrorCode(err) != errors.EForbidden {
		t.Fatalf("expected delete to be gated, got %v", err)
	}

	// reads pass through ungated
	if _, _, err := svc.FindKPIConfigs(ctx, pulseboard.KPIConfigFilter{}); err != nil {
		t.Fatal(err)
	}
}

func TestDataSourceService_TestConnectionGated(t *testing.T) {
	gate, _, _, users := allowAllGate()
	users.HasPermissionFn = func(context.Context, string) (bool, error) {
		return false, nil
	}

	svc := authorizer.NewDataSourceService(gate, mock.NewDataSourceService())
	ctx := sessionContext()

	if _, err := svc.TestConnection(ctx, platform.ID(1)); errors.ErrorCode(err) != errors.EForbidden {
		t.Fatalf("expected test connection to be gated, got %v", err)
	}
	if _, err := svc.Statistics(ctx); err != nil {
		t.Fatal(err)
	}
}
