package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"go.uber.org/zap"
)

type Logger struct {
	logger     *zap.Logger
	kpiService pulseboard.KPIService
}

// NewLogger returns a logging service middleware for the KPI Service.
func NewLogger(log *zap.Logger, s pulseboard.KPIService) *Logger {
	return &Logger{
		logger:     log,
		kpiService: s,
	}
}

var _ pulseboard.KPIService = (*Logger)(nil)

func (l *Logger) FindKPIConfigByID(ctx context.Context, id platform.ID) (cfg *pulseboard.KPIConfig, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find kpi config with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi config find by ID", dur)
	}(time.Now())
	return l.kpiService.FindKPIConfigByID(ctx, id)
}

func (l *Logger) FindKPIConfigs(ctx context.Context, filter pulseboard.KPIConfigFilter) (cfgs []*pulseboard.KPIConfig, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find kpi configs matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi configs find", dur)
	}(time.Now())
	return l.kpiService.FindKPIConfigs(ctx, filter)
}

func (l *Logger) VisibleConfigs(ctx context.Context) (cfgs []*pulseboard.KPIConfig, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to list visible kpi configs", zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi configs visible", dur)
	}(time.Now())
	return l.kpiService.VisibleConfigs(ctx)
}

func (l *Logger) CreateKPIConfig(ctx context.Context, cfg *pulseboard.KPIConfig) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create kpi config", zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi config create", dur)
	}(time.Now())
	return l.kpiService.CreateKPIConfig(ctx, cfg)
}

func (l *Logger) UpdateKPIConfig(ctx context.Context, id platform.ID, upd pulseboard.KPIConfigUpdate) (cfg *pulseboard.KPIConfig, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update kpi config", zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi config update", dur)
	}(time.Now())
	return l.kpiService.UpdateKPIConfig(ctx, id, upd)
}

func (l *Logger) DeleteKPIConfig(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete kpi config with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi config delete", dur)
	}(time.Now())
	return l.kpiService.DeleteKPIConfig(ctx, id)
}

func (l *Logger) FetchValue(ctx context.Context, cfg *pulseboard.KPIConfig) (v *pulseboard.KPIValue, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to fetch value for kpi config with ID %v", cfg.ID)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("kpi fetch value", dur)
	}(time.Now())
	return l.kpiService.FetchValue(ctx, cfg)
}
