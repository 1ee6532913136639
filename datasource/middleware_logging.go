package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"go.uber.org/zap"
)

type Logger struct {
	logger            *zap.Logger
	dataSourceService pulseboard.DataSourceService
}

// NewLogger returns a logging service middleware for the Data Source Service.
func NewLogger(log *zap.Logger, s pulseboard.DataSourceService) *Logger {
	return &Logger{
		logger:            log,
		dataSourceService: s,
	}
}

var _ pulseboard.DataSourceService = (*Logger)(nil)

func (l *Logger) FindDataSourceByID(ctx context.Context, id platform.ID) (ds *pulseboard.DataSource, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find data source with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("data source find by ID", dur)
	}(time.Now())
	return l.dataSourceService.FindDataSourceByID(ctx, id)
}

func (l *Logger) FindDataSources(ctx context.Context, filter pulseboard.DataSourceFilter) (dss []*pulseboard.DataSource, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find data sources matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("data sources find", dur)
	}(time.Now())
	return l.dataSourceService.FindDataSources(ctx, filter)
}

func (l *Logger) CreateDataSource(ctx context.Context, ds *pulseboard.DataSource) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create data source", zap.Error(err), dur)
			return
		}
		l.logger.Debug("data source create", dur)
	}(time.Now())
	return l.dataSourceService.CreateDataSource(ctx, ds)
}

func (l *Logger) UpdateDataSource(ctx context.Context, id platform.ID, upd pulseboard.DataSourceUpdate) (ds *pulseboard.DataSource, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update data source", zap.Error(err), dur)
			return
		}
		l.logger.Debug("data source update", dur)
	}(time.Now())
	return l.dataSourceService.UpdateDataSource(ctx, id, upd)
}

func (l *Logger) DeleteDataSource(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete data source with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("data source delete", dur)
	}(time.Now())
	return l.dataSourceService.DeleteDataSource(ctx, id)
}

func (l *Logger) TestConnection(ctx context.Context, id platform.ID) (result *pulseboard.ConnectionTestResult, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to test data source with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("data source test connection", dur)
	}(time.Now())
	return l.dataSourceService.TestConnection(ctx, id)
}

func (l *Logger) Statistics(ctx context.Context) (stats *pulseboard.DataSourceStatistics, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to compute data source statistics", zap.Error(err), dur)
			return
		}
		l.logger.Debug("data source statistics", dur)
	}(time.Now())
	return l.dataSourceService.Statistics(ctx)
}
