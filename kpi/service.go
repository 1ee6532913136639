package kpi

import (
	"context"
	"sort"

	"github.com/benbjohnson/clock"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kv"
)

// Service implements the KPI configuration engine over a Store. Value
// resolution goes through the data source registry and a ValueReader; both
// degrade to a zero reading rather than failing the dashboard.
type Service struct {
	store     *Store
	clock     clock.Clock
	sources   pulseboard.DataSourceService
	reader    pulseboard.ValueReader
	evaluator pulseboard.FormulaEvaluator
}

var _ pulseboard.KPIService = (*Service)(nil)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock injects the clock used for created/updated timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// WithValueReader injects the reader used to resolve datasource-backed KPIs.
func WithValueReader(r pulseboard.ValueReader) ServiceOption {
	return func(s *Service) {
		s.reader = r
	}
}

// WithFormulaEvaluator injects the evaluator used for calculated KPIs. The
// default refuses every formula.
func WithFormulaEvaluator(e pulseboard.FormulaEvaluator) ServiceOption {
	return func(s *Service) {
		s.evaluator = e
	}
}

// NewService constructs a Service over the provided store and data source
// registry.
func NewService(st *Store, sources pulseboard.DataSourceService, opts ...ServiceOption) *Service {
	s := &Service{
		store:     st,
		clock:     clock.New(),
		sources:   sources,
		evaluator: unsupportedEvaluator{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FindKPIConfigByID returns a single KPI config by ID.
func (s *Service) FindKPIConfigByID(ctx context.Context, id platform.ID) (*pulseboard.KPIConfig, error) {
	var cfg *pulseboard.KPIConfig
	err := s.store.View(ctx, func(tx kv.Tx) error {
		c, err := s.store.GetKPIConfig(ctx, tx, id)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindKPIConfigs returns KPI configs matching filter in storage order.
func (s *Service) FindKPIConfigs(ctx context.Context, filter pulseboard.KPIConfigFilter) ([]*pulseboard.KPIConfig, int, error) {
	var cfgs []*pulseboard.KPIConfig
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListKPIConfigs(ctx, tx)
		if err != nil {
			return err
		}
		for _, cfg := range all {
			if filter.Visible != nil && cfg.Visible != *filter.Visible {
				continue
			}
			cfgs = append(cfgs, cfg)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return cfgs, len(cfgs), nil
}

// VisibleConfigs returns visible configs stable-sorted ascending by Order.
// Ties keep storage order.
func (s *Service) VisibleConfigs(ctx context.Context) ([]*pulseboard.KPIConfig, error) {
	visible := true
	cfgs, _, err := s.FindKPIConfigs(ctx, pulseboard.KPIConfigFilter{Visible: &visible})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cfgs, func(i, j int) bool {
		return cfgs[i].Order < cfgs[j].Order
	})
	return cfgs, nil
}

// CreateKPIConfig creates a KPI config and sets cfg.ID.
func (s *Service) CreateKPIConfig(ctx context.Context, cfg *pulseboard.KPIConfig) error {
	if cfg.Name == "" {
		return ErrKPIConfigNameEmpty
	}
	if cfg.DataSource.Type == "" {
		cfg.DataSource.Type = pulseboard.KPISourceStatic
	}
	if !cfg.DataSource.Type.Valid() {
		return ErrInvalidSourceType
	}

	cfg.ID = s.store.IDGen.ID()
	now := s.clock.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateKPIConfig(ctx, tx, cfg)
	})
}

// UpdateKPIConfig updates a single KPI config with a changeset.
func (s *Service) UpdateKPIConfig(ctx context.Context, id platform.ID, upd pulseboard.KPIConfigUpdate) (*pulseboard.KPIConfig, error) {
	var cfg *pulseboard.KPIConfig
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		c, err := s.store.GetKPIConfig(ctx, tx, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			c.Name = *upd.Name
		}
		if upd.Description != nil {
			c.Description = *upd.Description
		}
		if upd.Icon != nil {
			c.Icon = *upd.Icon
		}
		if upd.DataSource != nil {
			if !upd.DataSource.Type.Valid() {
				return ErrInvalidSourceType
			}
			c.DataSource = *upd.DataSource
		}
		if upd.Formatting != nil {
			c.Formatting = *upd.Formatting
		}
		if upd.Trend != nil {
			c.Trend = upd.Trend
		}
		if upd.Target != nil {
			c.Target = upd.Target
		}
		if upd.Order != nil {
			c.Order = *upd.Order
		}
		if upd.Visible != nil {
			c.Visible = *upd.Visible
		}
		c.UpdatedAt = s.clock.Now()

		if err := s.store.PutKPIConfig(ctx, tx, c); err != nil {
			return err
		}
		cfg = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeleteKPIConfig removes a KPI config by ID.
func (s *Service) DeleteKPIConfig(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.DeleteKPIConfig(ctx, tx, id)
	})
}

// FetchValue resolves a config to a reading. A dangling or missing data
// source reference degrades to a zero reading; the dashboard always has
// something to render.
func (s *Service) FetchValue(ctx context.Context, cfg *pulseboard.KPIConfig) (*pulseboard.KPIValue, error) {
	switch cfg.DataSource.Type {
	case pulseboard.KPISourceStatic:
		v := &pulseboard.KPIValue{}
		if cfg.DataSource.StaticValue != nil {
			v.Value = *cfg.DataSource.StaticValue
		}
		return v, nil

	case pulseboard.KPISourceDataSource:
		if cfg.DataSource.SourceID == nil {
			return &pulseboard.KPIValue{}, nil
		}
		ds, err := s.sources.FindDataSourceByID(ctx, *cfg.DataSource.SourceID)
		if err != nil {
			if errors.ErrorCode(err) == errors.ENotFound {
				return &pulseboard.KPIValue{}, nil
			}
			return nil, err
		}
		if s.reader == nil {
			return &pulseboard.KPIValue{}, nil
		}
		current, previous, err := s.reader.ReadValue(ctx, ds, cfg.DataSource.Metric)
		if err != nil {
			return nil, err
		}
		return reading(current, previous), nil

	case pulseboard.KPISourceCalculated:
		value, err := s.evaluator.Evaluate(ctx, cfg.DataSource.CalculationFormula)
		if err != nil {
			return nil, err
		}
		return &pulseboard.KPIValue{Value: value}, nil
	}

	return nil, ErrInvalidSourceType
}

// reading builds a KPIValue from two raw samples. A zero previous value is
// no baseline: neither a change figure nor a trend is reported.
func reading(current, previous float64) *pulseboard.KPIValue {
	v := &pulseboard.KPIValue{
		Value:         current,
		PreviousValue: &previous,
	}
	if previous == 0 {
		return v
	}

	change := (current - previous) / previous * 100
	v.Change = &change
	if change >= 0 {
		v.Trend = pulseboard.TrendUp
	} else {
		v.Trend = pulseboard.TrendDown
	}
	return v
}
