package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"go.uber.org/zap"
)

type TenantLogger struct {
	logger        *zap.Logger
	tenantService pulseboard.TenantService
}

// NewTenantLogger returns a logging service middleware for the Tenant Service.
func NewTenantLogger(log *zap.Logger, s pulseboard.TenantService) *TenantLogger {
	return &TenantLogger{
		logger:        log,
		tenantService: s,
	}
}

var _ pulseboard.TenantService = (*TenantLogger)(nil)

func (l *TenantLogger) FindTenantByID(ctx context.Context, id platform.ID) (t *pulseboard.Tenant, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find tenant with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant find by ID", dur)
	}(time.Now())
	return l.tenantService.FindTenantByID(ctx, id)
}

func (l *TenantLogger) FindTenants(ctx context.Context, filter pulseboard.TenantFilter) (ts []*pulseboard.Tenant, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find tenants matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenants find", dur)
	}(time.Now())
	return l.tenantService.FindTenants(ctx, filter)
}

func (l *TenantLogger) CreateTenant(ctx context.Context, t *pulseboard.Tenant) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create tenant", zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant create", dur)
	}(time.Now())
	return l.tenantService.CreateTenant(ctx, t)
}

func (l *TenantLogger) UpdateTenant(ctx context.Context, id platform.ID, upd pulseboard.TenantUpdate) (t *pulseboard.Tenant, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update tenant", zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant update", dur)
	}(time.Now())
	return l.tenantService.UpdateTenant(ctx, id, upd)
}

func (l *TenantLogger) SuspendTenant(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to suspend tenant with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant suspend", dur)
	}(time.Now())
	return l.tenantService.SuspendTenant(ctx, id)
}

func (l *TenantLogger) ActivateTenant(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to activate tenant with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant activate", dur)
	}(time.Now())
	return l.tenantService.ActivateTenant(ctx, id)
}

func (l *TenantLogger) DeleteTenant(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete tenant with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant delete", dur)
	}(time.Now())
	return l.tenantService.DeleteTenant(ctx, id)
}

func (l *TenantLogger) CheckResourceLimit(ctx context.Context, id platform.ID, resource string) (limit *pulseboard.ResourceLimit, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to check %v limit for tenant with ID %v", resource, id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant check resource limit", dur)
	}(time.Now())
	return l.tenantService.CheckResourceLimit(ctx, id, resource)
}

func (l *TenantLogger) ValidateTenantAccess(ctx context.Context, id, userID platform.ID) (ok bool, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to validate access to tenant with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant validate access", dur)
	}(time.Now())
	return l.tenantService.ValidateTenantAccess(ctx, id, userID)
}

func (l *TenantLogger) CheckModuleAccess(ctx context.Context, id platform.ID, module string) (ok bool, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to check module %v for tenant with ID %v", module, id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("tenant check module access", dur)
	}(time.Now())
	return l.tenantService.CheckModuleAccess(ctx, id, module)
}
