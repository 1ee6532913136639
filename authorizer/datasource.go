package authorizer

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.DataSourceService = (*DataSourceService)(nil)

// DataSourceService wraps a pulseboard.DataSourceService and authorizes
// actions against it appropriately.
type DataSourceService struct {
	s    pulseboard.DataSourceService
	gate *Gate
}

// NewDataSourceService constructs an instance of an authorizing data source service.
func NewDataSourceService(gate *Gate, s pulseboard.DataSourceService) *DataSourceService {
	return &DataSourceService{
		s:    s,
		gate: gate,
	}
}

func (s *DataSourceService) FindDataSourceByID(ctx context.Context, id platform.ID) (*pulseboard.DataSource, error) {
	return s.s.FindDataSourceByID(ctx, id)
}

func (s *DataSourceService) FindDataSources(ctx context.Context, filter pulseboard.DataSourceFilter) ([]*pulseboard.DataSource, int, error) {
	return s.s.FindDataSources(ctx, filter)
}

// CreateDataSource requires settings management within the datasources module.
func (s *DataSourceService) CreateDataSource(ctx context.Context, ds *pulseboard.DataSource) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleDataSources,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return err
	}
	return s.s.CreateDataSource(ctx, ds)
}

// UpdateDataSource requires settings management within the datasources module.
func (s *DataSourceService) UpdateDataSource(ctx context.Context, id platform.ID, upd pulseboard.DataSourceUpdate) (*pulseboard.DataSource, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleDataSources,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return nil, err
	}
	return s.s.UpdateDataSource(ctx, id, upd)
}

// DeleteDataSource requires settings management within the datasources module.
func (s *DataSourceService) DeleteDataSource(ctx context.Context, id platform.ID) error {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleDataSources,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return err
	}
	return s.s.DeleteDataSource(ctx, id)
}

// TestConnection writes connection state, so it is gated like a mutation.
func (s *DataSourceService) TestConnection(ctx context.Context, id platform.ID) (*pulseboard.ConnectionTestResult, error) {
	if err := s.gate.Authorize(ctx, Requirement{
		Module:     pulseboard.ModuleDataSources,
		Capability: pulseboard.CapManageSettings,
	}); err != nil {
		return nil, err
	}
	return s.s.TestConnection(ctx, id)
}

func (s *DataSourceService) Statistics(ctx context.Context) (*pulseboard.DataSourceStatistics, error) {
	return s.s.Statistics(ctx)
}
