package mock

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.OrganizationService = (*OrganizationService)(nil)

// OrganizationService is a mock implementation of pulseboard.OrganizationService.
type OrganizationService struct {
	FindOrganizationByIDFn  func(context.Context, platform.ID) (*pulseboard.Organization, error)
	FindOrganizationsFn     func(context.Context, pulseboard.OrganizationFilter) ([]*pulseboard.Organization, int, error)
	CreateOrganizationFn    func(context.Context, *pulseboard.Organization) error
	UpdateOrganizationFn    func(context.Context, platform.ID, pulseboard.OrganizationUpdate) (*pulseboard.Organization, error)
	DeleteOrganizationFn    func(context.Context, platform.ID) error
	SetActiveOrganizationFn func(context.Context, platform.ID) error
	HasFeatureFn            func(context.Context, platform.ID, string) (bool, error)
	IsWithinLimitFn         func(context.Context, platform.ID, string, int) (bool, error)
	AddMemberFn             func(context.Context, platform.ID, platform.ID) error
	RemoveMemberFn          func(context.Context, platform.ID, platform.ID) error
}

// NewOrganizationService returns a mock OrganizationService where all methods
// return zero values.
func NewOrganizationService() *OrganizationService {
	return &OrganizationService{
		FindOrganizationByIDFn: func(context.Context, platform.ID) (*pulseboard.Organization, error) { return nil, nil },
		FindOrganizationsFn: func(context.Context, pulseboard.OrganizationFilter) ([]*pulseboard.Organization, int, error) {
			return nil, 0, nil
		},
		CreateOrganizationFn: func(context.Context, *pulseboard.Organization) error { return nil },
		UpdateOrganizationFn: func(context.Context, platform.ID, pulseboard.OrganizationUpdate) (*pulseboard.Organization, error) {
			return nil, nil
		},
		DeleteOrganizationFn:    func(context.Context, platform.ID) error { return nil },
		SetActiveOrganizationFn: func(context.Context, platform.ID) error { return nil },
		HasFeatureFn:            func(context.Context, platform.ID, string) (bool, error) { return true, nil },
		IsWithinLimitFn:         func(context.Context, platform.ID, string, int) (bool, error) { return true, nil },
		AddMemberFn:             func(context.Context, platform.ID, platform.ID) error { return nil },
		RemoveMemberFn:          func(context.Context, platform.ID, platform.ID) error { return nil },
	}
}

func (s *OrganizationService) FindOrganizationByID(ctx context.Context, id platform.ID) (*pulseboard.Organization, error) {
	return s.FindOrganizationByIDFn(ctx, id)
}

func (s *OrganizationService) FindOrganizations(ctx context.Context, filter pulseboard.OrganizationFilter) ([]*pulseboard.Organization, int, error) {
	return s.FindOrganizationsFn(ctx, filter)
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, o *pulseboard.Organization) error {
	return s.CreateOrganizationFn(ctx, o)
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, id platform.ID, upd pulseboard.OrganizationUpdate) (*pulseboard.Organization, error) {
	return s.UpdateOrganizationFn(ctx, id, upd)
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, id platform.ID) error {
	return s.DeleteOrganizationFn(ctx, id)
}

func (s *OrganizationService) SetActiveOrganization(ctx context.Context, id platform.ID) error {
	return s.SetActiveOrganizationFn(ctx, id)
}

func (s *OrganizationService) HasFeature(ctx context.Context, id platform.ID, flag string) (bool, error) {
	return s.HasFeatureFn(ctx, id, flag)
}

func (s *OrganizationService) IsWithinLimit(ctx context.Context, id platform.ID, limitKey string, current int) (bool, error) {
	return s.IsWithinLimitFn(ctx, id, limitKey, current)
}

func (s *OrganizationService) AddMember(ctx context.Context, orgID, userID platform.ID) error {
	return s.AddMemberFn(ctx, orgID, userID)
}

func (s *OrganizationService) RemoveMember(ctx context.Context, orgID, userID platform.ID) error {
	return s.RemoveMemberFn(ctx, orgID, userID)
}
