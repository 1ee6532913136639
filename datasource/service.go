package datasource

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kv"
	"go.uber.org/zap"
)

// Service implements the data source registry over a Store.
type Service struct {
	store  *Store
	clock  clock.Clock
	logger *zap.Logger
	tester pulseboard.ConnectionTester
}

var _ pulseboard.DataSourceService = (*Service)(nil)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock injects the clock used for test timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets the logger; manual status overrides are logged through it.
func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = log
	}
}

// NewService constructs a Service over the provided store and tester.
func NewService(st *Store, tester pulseboard.ConnectionTester, opts ...ServiceOption) *Service {
	s := &Service{
		store:  st,
		clock:  clock.New(),
		logger: zap.NewNop(),
		tester: tester,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FindDataSourceByID returns a single data source by ID.
func (s *Service) FindDataSourceByID(ctx context.Context, id platform.ID) (*pulseboard.DataSource, error) {
	var ds *pulseboard.DataSource
	err := s.store.View(ctx, func(tx kv.Tx) error {
		d, err := s.store.GetDataSource(ctx, tx, id)
		if err != nil {
			return err
		}
		ds = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// FindDataSources returns data sources matching filter.
func (s *Service) FindDataSources(ctx context.Context, filter pulseboard.DataSourceFilter) ([]*pulseboard.DataSource, int, error) {
	var dss []*pulseboard.DataSource
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListDataSources(ctx, tx)
		if err != nil {
			return err
		}
		for _, ds := range all {
			if filter.Type != nil && ds.Type != *filter.Type {
				continue
			}
			if filter.Status != nil && ds.Status != *filter.Status {
				continue
			}
			if filter.TenantID != nil && ds.TenantID != *filter.TenantID {
				continue
			}
			if filter.OrganizationID != nil && ds.OrganizationID != *filter.OrganizationID {
				continue
			}
			dss = append(dss, ds)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return dss, len(dss), nil
}

// CreateDataSource validates the typed configuration and creates the record.
// New data sources always start disconnected; only a connection test can move
// them out of that state.
func (s *Service) CreateDataSource(ctx context.Context, ds *pulseboard.DataSource) error {
	if ds.Name == "" {
		return ErrDataSourceNameEmpty
	}
	if !ds.Type.Valid() {
		return UnknownTypeError(string(ds.Type))
	}
	if err := validateConfig(ds.Type, ds.Config); err != nil {
		return err
	}

	ds.ID = s.store.IDGen.ID()
	ds.Status = pulseboard.StatusDisconnected
	ds.Metadata = pulseboard.DataSourceMetadata{
		CreatedAt: s.clock.Now(),
	}

	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateDataSource(ctx, tx, ds)
	})
}

// UpdateDataSource updates a single data source with a changeset. A status in
// the changeset is honored but recorded as a manual override, since it
// bypasses the connection test state machine.
func (s *Service) UpdateDataSource(ctx context.Context, id platform.ID, upd pulseboard.DataSourceUpdate) (*pulseboard.DataSource, error) {
	var ds *pulseboard.DataSource
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		d, err := s.store.GetDataSource(ctx, tx, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			d.Name = *upd.Name
		}
		if upd.Config != nil {
			if err := validateConfig(d.Type, *upd.Config); err != nil {
				return err
			}
			d.Config = *upd.Config
		}
		if upd.Credentials != nil {
			d.Credentials = *upd.Credentials
		}
		if upd.Status != nil {
			if !upd.Status.Valid() {
				return InvalidStatusError(string(*upd.Status))
			}
			d.Status = *upd.Status
			d.Metadata.ManualOverride = true
			s.logger.Warn("data source status set manually, bypassing connection test",
				zap.String("id", id.String()),
				zap.String("status", string(*upd.Status)))
		}

		if err := s.store.PutDataSource(ctx, tx, d); err != nil {
			return err
		}
		ds = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// DeleteDataSource removes the record unconditionally. Dangling KPI references
// are tolerated downstream.
func (s *Service) DeleteDataSource(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.DeleteDataSource(ctx, tx, id)
	})
}

// TestConnection runs the connection test RPC and applies the resulting status
// transition: success moves the source to connected, a failed test or a
// transport error moves it to error. The test outcome is recorded in the
// metadata either way, and a test clears any manual override.
func (s *Service) TestConnection(ctx context.Context, id platform.ID) (*pulseboard.ConnectionTestResult, error) {
	ds, err := s.FindDataSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, testErr := s.tester.TestConnection(ctx, ds)
	if testErr != nil {
		result = &pulseboard.ConnectionTestResult{
			Success: false,
			Message: testErr.Error(),
		}
	}

	err = s.store.Update(ctx, func(tx kv.Tx) error {
		d, err := s.store.GetDataSource(ctx, tx, id)
		if err != nil {
			return err
		}

		if result.Success {
			d.Status = pulseboard.StatusConnected
		} else {
			d.Status = pulseboard.StatusError
		}
		now := s.clock.Now()
		d.Metadata.LastTestedAt = &now
		d.Metadata.LastTestMessage = result.Message
		d.Metadata.ManualOverride = false

		return s.store.PutDataSource(ctx, tx, d)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Statistics summarizes the registry.
func (s *Service) Statistics(ctx context.Context) (*pulseboard.DataSourceStatistics, error) {
	stats := &pulseboard.DataSourceStatistics{
		ByType: map[pulseboard.DataSourceType]int{},
	}
	err := s.store.View(ctx, func(tx kv.Tx) error {
		all, err := s.store.ListDataSources(ctx, tx)
		if err != nil {
			return err
		}
		for _, ds := range all {
			stats.Total++
			if ds.Status == pulseboard.StatusConnected {
				stats.Connected++
			}
			stats.ByType[ds.Type]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
