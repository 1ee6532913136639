package mock

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.DataSourceService = (*DataSourceService)(nil)
var _ pulseboard.ConnectionTester = (*ConnectionTester)(nil)

// DataSourceService is a mock implementation of pulseboard.DataSourceService.
type DataSourceService struct {
	FindDataSourceByIDFn func(context.Context, platform.ID) (*pulseboard.DataSource, error)
	FindDataSourcesFn    func(context.Context, pulseboard.DataSourceFilter) ([]*pulseboard.DataSource, int, error)
	CreateDataSourceFn   func(context.Context, *pulseboard.DataSource) error
	UpdateDataSourceFn   func(context.Context, platform.ID, pulseboard.DataSourceUpdate) (*pulseboard.DataSource, error)
	DeleteDataSourceFn   func(context.Context, platform.ID) error
	TestConnectionFn     func(context.Context, platform.ID) (*pulseboard.ConnectionTestResult, error)
	StatisticsFn         func(context.Context) (*pulseboard.DataSourceStatistics, error)
}

// NewDataSourceService returns a mock DataSourceService where all methods
// return zero values.
func NewDataSourceService() *DataSourceService {
	return &DataSourceService{
		FindDataSourceByIDFn: func(context.Context, platform.ID) (*pulseboard.DataSource, error) { return nil, nil },
		FindDataSourcesFn: func(context.Context, pulseboard.DataSourceFilter) ([]*pulseboard.DataSource, int, error) {
			return nil, 0, nil
		},
		CreateDataSourceFn: func(context.Context, *pulseboard.DataSource) error { return nil },
		UpdateDataSourceFn: func(context.Context, platform.ID, pulseboard.DataSourceUpdate) (*pulseboard.DataSource, error) {
			return nil, nil
		},
		DeleteDataSourceFn: func(context.Context, platform.ID) error { return nil },
		TestConnectionFn: func(context.Context, platform.ID) (*pulseboard.ConnectionTestResult, error) {
			return nil, nil
		},
		StatisticsFn: func(context.Context) (*pulseboard.DataSourceStatistics, error) { return nil, nil },
	}
}

func (s *DataSourceService) FindDataSourceByID(ctx context.Context, id platform.ID) (*pulseboard.DataSource, error) {
	return s.FindDataSourceByIDFn(ctx, id)
}

func (s *DataSourceService) FindDataSources(ctx context.Context, filter pulseboard.DataSourceFilter) ([]*pulseboard.DataSource, int, error) {
	return s.FindDataSourcesFn(ctx, filter)
}

func (s *DataSourceService) CreateDataSource(ctx context.Context, ds *pulseboard.DataSource) error {
	return s.CreateDataSourceFn(ctx, ds)
}

func (s *DataSourceService) UpdateDataSource(ctx context.Context, id platform.ID, upd pulseboard.DataSourceUpdate) (*pulseboard.DataSource, error) {
	return s.UpdateDataSourceFn(ctx, id, upd)
}

func (s *DataSourceService) DeleteDataSource(ctx context.Context, id platform.ID) error {
	return s.DeleteDataSourceFn(ctx, id)
}

func (s *DataSourceService) TestConnection(ctx context.Context, id platform.ID) (*pulseboard.ConnectionTestResult, error) {
	return s.TestConnectionFn(ctx, id)
}

func (s *DataSourceService) Statistics(ctx context.Context) (*pulseboard.DataSourceStatistics, error) {
	return s.StatisticsFn(ctx)
}

// ConnectionTester is a mock implementation of pulseboard.ConnectionTester.
type ConnectionTester struct {
	TestConnectionFn func(context.Context, *pulseboard.DataSource) (*pulseboard.ConnectionTestResult, error)
}

// NewConnectionTester returns a tester that reports success for every source.
func NewConnectionTester() *ConnectionTester {
	return &ConnectionTester{
		TestConnectionFn: func(context.Context, *pulseboard.DataSource) (*pulseboard.ConnectionTestResult, error) {
			return &pulseboard.ConnectionTestResult{Success: true, Message: "ok"}, nil
		},
	}
}

func (t *ConnectionTester) TestConnection(ctx context.Context, ds *pulseboard.DataSource) (*pulseboard.ConnectionTestResult, error) {
	return t.TestConnectionFn(ctx, ds)
}
