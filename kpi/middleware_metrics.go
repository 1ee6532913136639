package kpi

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/metric"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var _ pulseboard.KPIService = (*Metrics)(nil)

type Metrics struct {
	// RED metrics
	rec *metric.REDClient

	kpiService pulseboard.KPIService
}

// NewMetrics returns a metrics service middleware for the KPI Service.
func NewMetrics(reg prometheus.Registerer, s pulseboard.KPIService, opts ...metric.ClientOptFn) *Metrics {
	o := metric.ApplyMetricOpts(opts...)
	return &Metrics{
		rec:        metric.New(reg, o.ApplySuffix("kpi")),
		kpiService: s,
	}
}

func (m *Metrics) FindKPIConfigByID(ctx context.Context, id platform.ID) (*pulseboard.KPIConfig, error) {
	rec := m.rec.Record("find_kpi_config_by_id")
	cfg, err := m.kpiService.FindKPIConfigByID(ctx, id)
	return cfg, rec(err)
}

func (m *Metrics) FindKPIConfigs(ctx context.Context, filter pulseboard.KPIConfigFilter) ([]*pulseboard.KPIConfig, int, error) {
	rec := m.rec.Record("find_kpi_configs")
	cfgs, n, err := m.kpiService.FindKPIConfigs(ctx, filter)
	return cfgs, n, rec(err)
}

func (m *Metrics) VisibleConfigs(ctx context.Context) ([]*pulseboard.KPIConfig, error) {
	rec := m.rec.Record("visible_configs")
	cfgs, err := m.kpiService.VisibleConfigs(ctx)
	return cfgs, rec(err)
}

func (m *Metrics) CreateKPIConfig(ctx context.Context, cfg *pulseboard.KPIConfig) error {
	rec := m.rec.Record("create_kpi_config")
	err := m.kpiService.CreateKPIConfig(ctx, cfg)
	return rec(err)
}

func (m *Metrics) UpdateKPIConfig(ctx context.Context, id platform.ID, upd pulseboard.KPIConfigUpdate) (*pulseboard.KPIConfig, error) {
	rec := m.rec.Record("update_kpi_config")
	cfg, err := m.kpiService.UpdateKPIConfig(ctx, id, upd)
	return cfg, rec(err)
}

func (m *Metrics) DeleteKPIConfig(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_kpi_config")
	err := m.kpiService.DeleteKPIConfig(ctx, id)
	return rec(err)
}

func (m *Metrics) FetchValue(ctx context.Context, cfg *pulseboard.KPIConfig) (*pulseboard.KPIValue, error) {
	rec := m.rec.Record("fetch_value")
	v, err := m.kpiService.FetchValue(ctx, cfg)
	return v, rec(err)
}
