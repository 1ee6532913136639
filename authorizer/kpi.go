package authorizer

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.KPIService = (*KPIService)(nil)

// KPIService wraps a pulseboard.KPIService and authorizes actions against it
// appropriately.
type KPIService struct {
	s    pulseboard.KPIService
	gate *Gate
}

// NewKPIService constructs an instance of an authorizing KPI service.
func NewKPIService(gate *Gate, s pulseboard.KPIService) *KPIService {
	return &KPIService{
		s:    s,
		gate: gate,
	}
}

func (s *KPIService) FindKPIConfigByID(ctx context.Context, id platform.ID) (*pulseboard.KPIConfig, error) {
	return s.s.FindKPIConfigByID(ctx, id)
}

func (s *KPIService) FindKPIConfigs(ctx context.Context, filter pulseboard.KPIConfigFilter) ([]*pulseboard.KPIConfig, int, error) {
	return s.s.FindKPIConfigs(ctx, filter)
}

func (s *KPIService) VisibleConfigs(ctx context.Context) ([]*pulseboard.KPIConfig, error) {
	return s.s.VisibleConfigs(ctx)
}

// CreateKPIConfig requires dashboard editing with the dashboards feature.
func (s *KPIService) CreateKPIConfig(ctx context.Context, cfg *pulseboard.KPIConfig) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleKPIs,
		Feature:    pulseboard.OrgFeatureDashboards,
		Capability: pulseboard.CapEditDashboards,
	}); err != nil {
		return err
	}
	return s.s.CreateKPIConfig(ctx, cfg)
}

// UpdateKPIConfig requires dashboard editing with the dashboards feature.
func (s *KPIService) UpdateKPIConfig(ctx context.Context, id platform.ID, upd pulseboard.KPIConfigUpdate) (*pulseboard.KPIConfig, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleKPIs,
		Feature:    pulseboard.OrgFeatureDashboards,
		Capability: pulseboard.CapEditDashboards,
	}); err != nil {
		return nil, err
	}
	return s.s.UpdateKPIConfig(ctx, id, upd)
}

// DeleteKPIConfig requires dashboard editing with the dashboards feature.
func (s *KPIService) DeleteKPIConfig(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleKPIs,
		Feature:    pulseboard.OrgFeatureDashboards,
		Capability: pulseboard.CapEditDashboards,
	}); err != nil {
		return err
	}
	return s.s.DeleteKPIConfig(ctx, id)
}

func (s *KPIService) FetchValue(ctx context.Context, cfg *pulseboard.KPIConfig) (*pulseboard.KPIValue, error) {
	return s.s.FetchValue(ctx, cfg)
}
