package datasource

import (
	"errors"

	"github.com/hashicorp/go-multierror"
	"github.com/pulseboard/pulseboard"
)

// validateConfig checks that exactly the configuration record matching the
// type's kind is populated and that its required fields are set. All failures
// are collected rather than reported one at a time.
func validateConfig(t pulseboard.DataSourceType, cfg pulseboard.DataSourceConfig) error {
	var result *multierror.Error

	kind := t.Kind()
	if cfg.Database != nil && kind != pulseboard.KindDatabase {
		result = multierror.Append(result, errors.New("database config set on a non-database type"))
	}
	if cfg.API != nil && kind != pulseboard.KindAPI {
		result = multierror.Append(result, errors.New("api config set on a non-api type"))
	}
	if cfg.Cloud != nil && kind != pulseboard.KindCloud {
		result = multierror.Append(result, errors.New("cloud config set on a non-cloud type"))
	}
	if cfg.SaaS != nil && kind != pulseboard.KindSaaS {
		result = multierror.Append(result, errors.New("saas config set on a non-saas type"))
	}

	switch kind {
	case pulseboard.KindDatabase:
		if cfg.Database == nil {
			result = multierror.Append(result, errors.New("database config is required"))
			break
		}
		if cfg.Database.Host == "" {
			result = multierror.Append(result, errors.New("database host is required"))
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			result = multierror.Append(result, errors.New("database port must be between 1 and 65535"))
		}
		if cfg.Database.Database == "" {
			result = multierror.Append(result, errors.New("database name is required"))
		}
	case pulseboard.KindAPI:
		if cfg.API == nil {
			result = multierror.Append(result, errors.New("api config is required"))
			break
		}
		if cfg.API.BaseURL == "" {
			result = multierror.Append(result, errors.New("api base URL is required"))
		}
		if cfg.API.Timeout < 0 {
			result = multierror.Append(result, errors.New("api timeout may not be negative"))
		}
	case pulseboard.KindCloud:
		if cfg.Cloud == nil {
			result = multierror.Append(result, errors.New("cloud config is required"))
			break
		}
		if cfg.Cloud.Region == "" {
			result = multierror.Append(result, errors.New("cloud region is required"))
		}
	case pulseboard.KindSaaS:
		if cfg.SaaS == nil {
			result = multierror.Append(result, errors.New("saas config is required"))
			break
		}
		if cfg.SaaS.AccountID == "" {
			result = multierror.Append(result, errors.New("saas account ID is required"))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return InvalidConfigError(err)
	}
	return nil
}
