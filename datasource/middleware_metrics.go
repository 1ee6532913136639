package datasource

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/metric"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.DataSourceService = (*Metrics)(nil)

type Metrics struct {
	// RED metrics
	rec *metric.REDClient

	dataSourceService pulseboard.DataSourceService
}

// NewMetrics returns a metrics service middleware for the Data Source Service.
func NewMetrics(reg prometheus.Registerer, s pulseboard.DataSourceService, opts ...metric.ClientOptFn) *Metrics {
	o := metric.ApplyMetricOpts(opts...)
	return &Metrics{
		rec:               metric.New(reg, o.ApplySuffix("datasource")),
		dataSourceService: s,
	}
}

func (m *Metrics) FindDataSourceByID(ctx context.Context, id platform.ID) (*pulseboard.DataSource, error) {
	rec := m.rec.Record("find_datasource_by_id")
	ds, err := m.dataSourceService.FindDataSourceByID(ctx, id)
	return ds, rec(err)
}

func (m *Metrics) FindDataSources(ctx context.Context, filter pulseboard.DataSourceFilter) ([]*pulseboard.DataSource, int, error) {
	rec := m.rec.Record("find_datasources")
	dss, n, err := m.dataSourceService.FindDataSources(ctx, filter)
	return dss, n, rec(err)
}

func (m *Metrics) CreateDataSource(ctx context.Context, ds *pulseboard.DataSource) error {
	rec := m.rec.Record("create_datasource")
	err := m.dataSourceService.CreateDataSource(ctx, ds)
	return rec(err)
}

func (m *Metrics) UpdateDataSource(ctx context.Context, id platform.ID, upd pulseboard.DataSourceUpdate) (*pulseboard.DataSource, error) {
	rec := m.rec.Record("update_datasource")
	ds, err := m.dataSourceService.UpdateDataSource(ctx, id, upd)
	return ds, rec(err)
}

func (m *Metrics) DeleteDataSource(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_datasource")
	err := m.dataSourceService.DeleteDataSource(ctx, id)
	return rec(err)
}

func (m *Metrics) TestConnection(ctx context.Context, id platform.ID) (*pulseboard.ConnectionTestResult, error) {
	rec := m.rec.Record("test_connection")
	result, err := m.dataSourceService.TestConnection(ctx, id)
	return result, rec(err)
}

func (m *Metrics) Statistics(ctx context.Context) (*pulseboard.DataSourceStatistics, error) {
	rec := m.rec.Record("statistics")
	stats, err := m.dataSourceService.Statistics(ctx)
	return stats, rec(err)
}
