// Package authorizer wraps the registry services with the authorization gate.
// Every denial surfaces as a generic forbidden error; the reason for the
// denial rides along as the wrapped error for internal diagnostics only.
package authorizer

import (
	"context"
	"fmt"

	"github.com/pulseboard/pulseboard"
	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

// Requirement names what an operation needs from the session: a tenant
// module, an organization feature flag and a user capability. Empty fields
// are not checked.
type Requirement struct {
	Module     string
	Feature    string
	Capability string
}

// Gate evaluates the composition rule. Access is granted only when the
// session tenant is accessible, the module is allowed for the tenant, the
// feature is enabled for the active organization and the session user holds
// the capability.
type Gate struct {
	tenants pulseboard.TenantService
	orgs    pulseboard.OrganizationService
	users   pulseboard.UserService
}

// NewGate constructs a Gate over the registries it consults.
func NewGate(tenants pulseboard.TenantService, orgs pulseboard.OrganizationService, users pulseboard.UserService) *Gate {
	return &Gate{
		tenants: tenants,
		orgs:    orgs,
		users:   users,
	}
}

func forbidden(reason error) error {
	return &errors.Error{
		Code: errors.EForbidden,
		Msg:  "forbidden",
		Err:  reason,
	}
}

// Authorize evaluates req against the session on ctx. All checks must pass;
// the first failing check denies.
func (g *Gate) Authorize(ctx context.Context, req Requirement) error {
	sess, err := icontext.GetSession(ctx)
	if err != nil {
		return forbidden(err)
	}
	if !sess.Valid() {
		return forbidden(fmt.Errorf("incomplete session principal"))
	}

	ok, err := g.tenants.ValidateTenantAccess(ctx, sess.TenantID, sess.UserID)
	if err != nil {
		return forbidden(err)
	}
	if !ok {
		return forbidden(fmt.Errorf("tenant %s is not accessible", sess.TenantID))
	}

	if req.Module != "" {
		ok, err := g.tenants.CheckModuleAccess(ctx, sess.TenantID, req.Module)
		if err != nil {
			return forbidden(err)
		}
		if !ok {
			return forbidden(fmt.Errorf("module %s is not allowed for tenant %s", req.Module, sess.TenantID))
		}
	}

	if req.Feature != "" {
		orgID, err := icontext.GetActiveOrganization(ctx)
		if err != nil {
			return forbidden(err)
		}
		ok, err := g.orgs.HasFeature(ctx, orgID, req.Feature)
		if err != nil {
			return forbidden(err)
		}
		if !ok {
			return forbidden(fmt.Errorf("feature %s is not enabled for org %s", req.Feature, orgID))
		}
	}

	if req.Capability != "" {
		ok, err := g.users.HasPermission(ctx, req.Capability)
		if err != nil {
			return forbidden(err)
		}
		if !ok {
			return forbidden(fmt.Errorf("user %s lacks capability %s", sess.UserID, req.Capability))
		}
	}

	return nil
}
