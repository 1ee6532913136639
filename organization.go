package pulseboard

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/kit/platform"
)

// OrganizationType classifies a node of the organization tree.
type OrganizationType string

const (
	OrgTypeCompany    OrganizationType = "company"
	OrgTypeDivision   OrganizationType = "division"
	OrgTypeDepartment OrganizationType = "department"
	OrgTypeTeam       OrganizationType = "team"
)

// Valid reports whether t is a known organization type.
func (t OrganizationType) Valid() bool {
	switch t {
	case OrgTypeCompany, OrgTypeDivision, OrgTypeDepartment, OrgTypeTeam:
		return true
	}
	return false
}

// Organization feature flags.
const (
	OrgFeatureDashboards    = "dashboards"
	OrgFeatureExports       = "exports"
	OrgFeatureEmailReports  = "emailReports"
	OrgFeatureCustomization = "customization"
	OrgFeatureAIInsights    = "aiInsights"
)

// Organization limit keys.
const (
	OrgLimitMaxUsers          = "maxUsers"
	OrgLimitMaxDashboards     = "maxDashboards"
	OrgLimitDataRetentionDays = "dataRetentionDays"
	OrgLimitStorageGB         = "storageGB"
)

// Organization is a unit nested inside a tenant. Organizations of one tenant
// form a forest: each has at most one parent and cycles are forbidden.
type Organization struct {
	ID        platform.ID          `json:"id"`
	TenantID  platform.ID          `json:"tenantId"`
	Name      string               `json:"name"`
	ParentID  *platform.ID         `json:"parentId,omitempty"`
	Type      OrganizationType     `json:"type"`
	Settings  OrganizationSettings `json:"settings"`
	Members   []platform.ID        `json:"members"`
	CreatedAt time.Time            `json:"createdAt"`
}

// OrganizationSettings carries the capability flags and usage limits of an
// organization, plus its cosmetic branding.
type OrganizationSettings struct {
	Features OrganizationFeatures `json:"features"`
	Limits   OrganizationLimits   `json:"limits"`
	Branding OrganizationBranding `json:"branding"`
}

// OrganizationFeatures is the boolean capability map of an organization.
type OrganizationFeatures struct {
	Dashboards    bool `json:"dashboards"`
	Exports       bool `json:"exports"`
	EmailReports  bool `json:"emailReports"`
	Customization bool `json:"customization"`
	AIInsights    bool `json:"aiInsights"`
}

// Enabled reports whether the named feature flag is set.
func (f OrganizationFeatures) Enabled(flag string) bool {
	switch flag {
	case OrgFeatureDashboards:
		return f.Dashboards
	case OrgFeatureExports:
		return f.Exports
	case OrgFeatureEmailReports:
		return f.EmailReports
	case OrgFeatureCustomization:
		return f.Customization
	case OrgFeatureAIInsights:
		return f.AIInsights
	}
	return false
}

// OrganizationLimits caps organization usage.
type OrganizationLimits struct {
	MaxUsers          int `json:"maxUsers"`
	MaxDashboards     int `json:"maxDashboards"`
	DataRetentionDays int `json:"dataRetentionDays"`
	StorageGB         int `json:"storageGB"`
}

// Limit returns the value of the named limit key, or 0 for unknown keys.
func (l OrganizationLimits) Limit(key string) int {
	switch key {
	case OrgLimitMaxUsers:
		return l.MaxUsers
	case OrgLimitMaxDashboards:
		return l.MaxDashboards
	case OrgLimitDataRetentionDays:
		return l.DataRetentionDays
	case OrgLimitStorageGB:
		return l.StorageGB
	}
	return 0
}

// OrganizationBranding is cosmetic state consumed by the UI shell.
type OrganizationBranding struct {
	LogoURL      string `json:"logoUrl,omitempty"`
	PrimaryColor string `json:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty"`
}

// BrandingApplier is the external UI collaborator invoked when the active
// organization changes. Implementations are purely cosmetic; failures are
// logged and otherwise ignored.
type BrandingApplier interface {
	ApplyBranding(ctx context.Context, b OrganizationBranding)
}

// OrganizationUpdate is a patch applied to an organization. Updates are
// last-write-wins on the stored settings.
type OrganizationUpdate struct {
	Name     *string               `json:"name,omitempty"`
	ParentID *platform.ID          `json:"parentId,omitempty"`
	Type     *OrganizationType     `json:"type,omitempty"`
	Settings *OrganizationSettings `json:"settings,omitempty"`
}

// OrganizationFilter selects organizations in FindOrganizations.
type OrganizationFilter struct {
	ID       *platform.ID
	TenantID *platform.ID
	ParentID *platform.ID
	Name     *string
}

// OrganizationService is the organization registry.
type OrganizationService interface {
	// FindOrganizationByID returns a single organization by ID.
	FindOrganizationByID(ctx context.Context, id platform.ID) (*Organization, error)

	// FindOrganizations returns organizations matching filter. Filtering on
	// ParentID yields the child organizations of a node.
	FindOrganizations(ctx context.Context, filter OrganizationFilter) ([]*Organization, int, error)

	// CreateOrganization creates a new organization under its tenant and
	// sets o.ID. The tenant's maxOrganizations quota is enforced here.
	CreateOrganization(ctx context.Context, o *Organization) error

	// UpdateOrganization updates a single organization with a changeset.
	UpdateOrganization(ctx context.Context, id platform.ID, upd OrganizationUpdate) (*Organization, error)

	// DeleteOrganization removes an organization; its children are
	// re-parented to the deleted node's parent.
	DeleteOrganization(ctx context.Context, id platform.ID) error

	// SetActiveOrganization switches the session's active organization and
	// triggers the branding side effect.
	SetActiveOrganization(ctx context.Context, id platform.ID) error

	// HasFeature reports whether the organization has the named feature
	// flag enabled.
	HasFeature(ctx context.Context, id platform.ID, flag string) (bool, error)

	// IsWithinLimit reports whether current consumption is strictly below
	// the organization's named limit.
	IsWithinLimit(ctx context.Context, id platform.ID, limitKey string, current int) (bool, error)

	// AddMember adds a user to the organization, bounded by maxUsers.
	AddMember(ctx context.Context, orgID, userID platform.ID) error

	// RemoveMember removes a user from the organization.
	RemoveMember(ctx context.Context, orgID, userID platform.ID) error
}
