package pulseboard

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/kit/platform"
)

// TenantStatus defines the lifecycle state of a tenant.
type TenantStatus string

const (
	// TenantActive is a tenant in good standing.
	TenantActive TenantStatus = "active"
	// TenantSuspended is a tenant that has been administratively disabled.
	TenantSuspended TenantStatus = "suspended"
	// TenantTrial is a tenant on an evaluation plan; access lapses once
	// Metadata.ExpiresAt has passed.
	TenantTrial TenantStatus = "trial"
	// TenantInactive is a tenant that is retained but not usable.
	TenantInactive TenantStatus = "inactive"
)

// Valid reports whether s is a known tenant status.
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantActive, TenantSuspended, TenantTrial, TenantInactive:
		return true
	}
	return false
}

// TenantPlan is the commercial plan a tenant is subscribed to.
type TenantPlan string

const (
	PlanFree         TenantPlan = "free"
	PlanStarter      TenantPlan = "starter"
	PlanProfessional TenantPlan = "professional"
	PlanEnterprise   TenantPlan = "enterprise"
)

// Valid reports whether p is a known tenant plan.
func (p TenantPlan) Valid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

// Resource names accepted by TenantService.CheckResourceLimit.
const (
	ResourceOrganizations = "organizations"
	ResourceUsers         = "users"
	ResourceStorage       = "storage"
)

// Tenant is the top-level isolated customer account, the largest unit of
// quota and feature control.
type Tenant struct {
	ID              platform.ID    `json:"id"`
	Name            string         `json:"name"`
	Domain          string         `json:"domain"`
	Status          TenantStatus   `json:"status"`
	Plan            TenantPlan     `json:"plan"`
	OrganizationIDs []platform.ID  `json:"organizationIds"`
	Settings        TenantSettings `json:"settings"`
	Metadata        TenantMetadata `json:"metadata"`
}

// TenantSettings carries both the legacy flat limit fields and the structured
// feature, isolation and security blocks. The flat fields are retained for
// persisted-state compatibility; new code reads the Features block.
type TenantSettings struct {
	// legacy flat fields
	MaxUsers        int      `json:"maxUsers"`
	MaxStorage      int      `json:"maxStorage"`
	AllowedFeatures []string `json:"allowedFeatures,omitempty"`
	CustomBranding  bool     `json:"customBranding"`

	Features  TenantFeatures  `json:"features"`
	Isolation TenantIsolation `json:"isolation"`
	Security  TenantSecurity  `json:"security"`
}

// TenantFeatures caps per-tenant resources and names the modules the tenant
// may use.
type TenantFeatures struct {
	MaxOrganizations int      `json:"maxOrganizations"`
	MaxUsers         int      `json:"maxUsers"`
	MaxStorageGB     int      `json:"maxStorageGB"`
	AllowedModules   []string `json:"allowedModules,omitempty"`
}

// TenantIsolation describes how strictly a tenant's data is segregated.
type TenantIsolation struct {
	DataSegregation  bool `json:"dataSegregation"`
	NetworkIsolation bool `json:"networkIsolation"`
	StorageIsolation bool `json:"storageIsolation"`
}

// TenantSecurity carries tenant-wide security policy.
type TenantSecurity struct {
	MFARequired    bool     `json:"mfaRequired"`
	IPWhitelist    []string `json:"ipWhitelist,omitempty"`
	SessionTimeout int      `json:"sessionTimeout"`
}

// TenantMetadata records the tenant lifecycle timestamps and ownership.
type TenantMetadata struct {
	CreatedAt    time.Time   `json:"createdAt"`
	ExpiresAt    *time.Time  `json:"expiresAt,omitempty"`
	LastAccessAt time.Time   `json:"lastAccessAt"`
	OwnerUserID  platform.ID `json:"ownerUserId,omitempty"`
}

// ResourceLimit reports current consumption against a tenant quota.
// Available is never negative; current+available == max whenever the tenant
// is within its quota.
type ResourceLimit struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Available int `json:"available"`
}

// TenantUpdate is a patch applied to a tenant. Nil fields are left unchanged.
type TenantUpdate struct {
	Name     *string         `json:"name,omitempty"`
	Domain   *string         `json:"domain,omitempty"`
	Status   *TenantStatus   `json:"status,omitempty"`
	Plan     *TenantPlan     `json:"plan,omitempty"`
	Settings *TenantSettings `json:"settings,omitempty"`
}

// TenantFilter selects tenants in FindTenants.
type TenantFilter struct {
	ID     *platform.ID
	Domain *string
	Status *TenantStatus
}

// TenantService is the tenant registry.
type TenantService interface {
	// FindTenantByID returns a single tenant by ID.
	FindTenantByID(ctx context.Context, id platform.ID) (*Tenant, error)

	// FindTenants returns a list of tenants that match filter.
	// Filtering on status to TenantActive yields the active tenant listing.
	FindTenants(ctx context.Context, filter TenantFilter) ([]*Tenant, int, error)

	// CreateTenant creates a new tenant and sets t.ID with the new
	// identifier. Tenants default to trial status.
	CreateTenant(ctx context.Context, t *Tenant) error

	// UpdateTenant updates a single tenant with a changeset.
	// Returns the new tenant state after update.
	UpdateTenant(ctx context.Context, id platform.ID, upd TenantUpdate) (*Tenant, error)

	// SuspendTenant moves the tenant to suspended status.
	SuspendTenant(ctx context.Context, id platform.ID) error

	// ActivateTenant moves the tenant to active status.
	ActivateTenant(ctx context.Context, id platform.ID) error

	// DeleteTenant removes a tenant by ID.
	DeleteTenant(ctx context.Context, id platform.ID) error

	// CheckResourceLimit reports consumption of the named resource
	// (organizations, users or storage) against the tenant quota.
	CheckResourceLimit(ctx context.Context, id platform.ID, resource string) (*ResourceLimit, error)

	// ValidateTenantAccess reports whether userID may currently access the
	// tenant. Missing tenants, suspended/inactive status and lapsed trials
	// all report false without error.
	ValidateTenantAccess(ctx context.Context, id, userID platform.ID) (bool, error)

	// CheckModuleAccess reports whether the named module is enabled for the
	// tenant.
	CheckModuleAccess(ctx context.Context, id platform.ID, module string) (bool, error)
}
