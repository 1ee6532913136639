package tenant

import (
	"fmt"

	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

var (
	// ErrTenantNotFound is used when the tenant is not found.
	ErrTenantNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "tenant not found",
	}

	// ErrTenantNameEmpty is used when a tenant is created without a name.
	ErrTenantNameEmpty = &errors.Error{
		Code: errors.EEmptyValue,
		Msg:  "tenant name is empty",
	}

	// ErrOrgNotFound is used when the organization is not found.
	ErrOrgNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "organization not found",
	}

	// ErrOrgNameEmpty is used when an organization is created without a name.
	ErrOrgNameEmpty = &errors.Error{
		Code: errors.EEmptyValue,
		Msg:  "organization name is empty",
	}

	// ErrOrgCycle is used when a re-parent would make the organization tree cyclic.
	ErrOrgCycle = &errors.Error{
		Code: errors.EInvalid,
		Msg:  "organization parent chain may not form a cycle",
	}

	// NotUniqueIDError is used when attempting to create a record with an ID that
	// already exists.
	NotUniqueIDError = &errors.Error{
		Code: errors.EConflict,
		Msg:  "ID already exists",
	}
)

// TenantDomainAlreadyExistsError is used when creating a tenant with a domain
// that is already registered.
func TenantDomainAlreadyExistsError(domain string) *errors.Error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("tenant with domain %s already exists", domain),
	}
}

// OrgAlreadyExistsError is used when creating an organization with a name that
// is taken within its tenant.
func OrgAlreadyExistsError(name string) *errors.Error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("organization with name %s already exists", name),
	}
}

// OrgQuotaExceededError is used when a tenant is at its maxOrganizations quota.
func OrgQuotaExceededError(max int) *errors.Error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("tenant organization quota of %d reached", max),
	}
}

// MemberLimitExceededError is used when an organization is at its maxUsers limit.
func MemberLimitExceededError(max int) *errors.Error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("organization member limit of %d reached", max),
	}
}

// UnknownResourceError is used when CheckResourceLimit is given an unknown resource name.
func UnknownResourceError(resource string) *errors.Error {
	return &errors.Error{
		Code: errors.EInvalid,
		Msg:  fmt.Sprintf("unknown resource %q", resource),
	}
}

// InvalidOrgParentError is used when an organization parent is invalid.
func InvalidOrgParentError(reason string) *errors.Error {
	return &errors.Error{
		Code: errors.EInvalid,
		Msg:  fmt.Sprintf("invalid organization parent: %s", reason),
	}
}

// ErrCorruptTenant the tenant stored cannot be decoded.
func ErrCorruptTenant(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "tenant could not be unmarshalled",
		Err:  err,
		Op:   "tenant/unmarshalTenant",
	}
}

// ErrCorruptOrg the org stored cannot be decoded.
func ErrCorruptOrg(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "organization could not be unmarshalled",
		Err:  err,
		Op:   "tenant/unmarshalOrg",
	}
}

// ErrUnprocessableTenant the tenant cannot be encoded.
func ErrUnprocessableTenant(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  "tenant could not be marshalled",
		Err:  err,
		Op:   "tenant/marshalTenant",
	}
}

// ErrUnprocessableOrg the org cannot be encoded.
func ErrUnprocessableOrg(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  "organization could not be marshalled",
		Err:  err,
		Op:   "tenant/marshalOrg",
	}
}
