package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"go.uber.org/zap"
)

type OrgLogger struct {
	logger     *zap.Logger
	orgService pulseboard.OrganizationService
}

// NewOrgLogger returns a logging service middleware for the Organization Service.
func NewOrgLogger(log *zap.Logger, s pulseboard.OrganizationService) *OrgLogger {
	return &OrgLogger{
		logger:     log,
		orgService: s,
	}
}

var _ pulseboard.OrganizationService = (*OrgLogger)(nil)

func (l *OrgLogger) FindOrganizationByID(ctx context.Context, id platform.ID) (o *pulseboard.Organization, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find org with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("org find by ID", dur)
	}(time.Now())
	return l.orgService.FindOrganizationByID(ctx, id)
}

func (l *OrgLogger) FindOrganizations(ctx context.Context, filter pulseboard.OrganizationFilter) (os []*pulseboard.Organization, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find orgs matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("orgs find", dur)
	}(time.Now())
	return l.orgService.FindOrganizations(ctx, filter)
}

func (l *OrgLogger) CreateOrganization(ctx context.Context, o *pulseboard.Organization) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create org", zap.Error(err), dur)
			return
		}
		l.logger.Debug("org create", dur)
	}(time.Now())
	return l.orgService.CreateOrganization(ctx, o)
}

func (l *OrgLogger) UpdateOrganization(ctx context.Context, id platform.ID, upd pulseboard.OrganizationUpdate) (o *pulseboard.Organization, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update org", zap.Error(err), dur)
			return
		}
		l.logger.Debug("org update", dur)
	}(time.Now())
	return l.orgService.UpdateOrganization(ctx, id, upd)
}

func (l *OrgLogger) DeleteOrganization(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete org with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("org delete", dur)
	}(time.Now())
	return l.orgService.DeleteOrganization(ctx, id)
}

func (l *OrgLogger) SetActiveOrganization(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to set active org to ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("org set active", dur)
	}(time.Now())
	return l.orgService.SetActiveOrganization(ctx, id)
}

func (l *OrgLogger) HasFeature(ctx context.Context, id platform.ID, flag string) (ok bool, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to check feature %v for org with ID %v", flag, id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("org has feature", dur)
	}(time.Now())
	return l.orgService.HasFeature(ctx, id, flag)
}

func (l *OrgLogger) IsWithinLimit(ctx context.Context, id platform.ID, limitKey string, current int) (ok bool, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to check limit %v for org with ID %v", limitKey, id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("org within limit", dur)
	}(time.Now())
	return l.orgService.IsWithinLimit(ctx, id, limitKey, current)
}

func (l *OrgLogger) AddMember(ctx context.Context, orgID, userID platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to add org member", zap.Error(err), dur)
			return
		}
		l.logger.Debug("org add member", dur)
	}(time.Now())
	return l.orgService.AddMember(ctx, orgID, userID)
}

func (l *OrgLogger) RemoveMember(ctx context.Context, orgID, userID platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to remove org member", zap.Error(err), dur)
			return
		}
		l.logger.Debug("org remove member", dur)
	}(time.Now())
	return l.orgService.RemoveMember(ctx, orgID, userID)
}
