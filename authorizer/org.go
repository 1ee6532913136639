package authorizer

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.OrganizationService = (*OrgService)(nil)

// OrgService wraps a pulseboard.OrganizationService and authorizes actions
// against it appropriately.
type OrgService struct {
	s    pulseboard.OrganizationService
	gate *Gate
}

// NewOrgService constructs an instance of an authorizing org service.
func NewOrgService(gate *Gate, s pulseboard.OrganizationService) *OrgService {
	return &OrgService{
		s:    s,
		gate: gate,
	}
}

func (s *OrgService) FindOrganizationByID(ctx context.Context, id platform.ID) (*pulseboard.Organization, error) {
	return s.s.FindOrganizationByID(ctx, id)
}

func (s *OrgService) FindOrganizations(ctx context.Context, filter pulseboard.OrganizationFilter) ([]*pulseboard.Organization, int, error) {
	return s.s.FindOrganizations(ctx, filter)
}

// CreateOrganization requires settings management.
func (s *OrgService) CreateOrganization(ctx context.Context, o *pulseboard.Organization) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return err
	}
	return s.s.CreateOrganization(ctx, o)
}

// UpdateOrganization requires settings management.
func (s *OrgService) UpdateOrganization(ctx context.Context, id platform.ID, upd pulseboard.OrganizationUpdate) (*pulseboard.Organization, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return nil, err
	}
	return s.s.UpdateOrganization(ctx, id, upd)
}

// DeleteOrganization requires settings management.
func (s *OrgService) DeleteOrganization(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleSettings,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return err
	}
	return s.s.DeleteOrganization(ctx, id)
}

// SetActiveOrganization is a session-scoped switch; any authenticated session
// may perform it, so it passes through.
func (s *OrgService) SetActiveOrganization(ctx context.Context, id platform.ID) error {
	return s.s.SetActiveOrganization(ctx, id)
}

func (s *OrgService) HasFeature(ctx context.Context, id platform.ID, flag string) (bool, error) {
	return s.s.HasFeature(ctx, id, flag)
}

func (s *OrgService) IsWithinLimit(ctx context.Context, id platform.ID, limitKey string, current int) (bool, error) {
	return s.s.IsWithinLimit(ctx, id, limitKey, current)
}

// AddMember requires user management.
func (s *OrgService) AddMember(ctx context.Context, orgID, userID platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return err
	}
	return s.s.AddMember(ctx, orgID, userID)
}

// RemoveMember requires user management.
func (s *OrgService) RemoveMember(ctx context.Context, orgID, userID platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleUsers,
		Capability: pulseboard.CapManageUsers,
	}); err != nil {
		return err
	}
	return s.s.RemoveMember(ctx, orgID, userID)
}
