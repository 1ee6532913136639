package kpi

import (
	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

var (
	// ErrKPIConfigNotFound is used when the KPI config is not found.
	ErrKPIConfigNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "kpi config not found",
	}

	// ErrKPIConfigNameEmpty is used when a KPI config is created without a name.
	ErrKPIConfigNameEmpty = &errors.Error{
		Code: errors.EEmptyValue,
		Msg:  "kpi config name is empty",
	}

	// ErrInvalidSourceType is used when the KPI source type is not recognized.
	ErrInvalidSourceType = &errors.Error{
		Code: errors.EInvalid,
		Msg:  "kpi source type must be one of static, datasource or calculated",
	}

	// ErrFormulaNotSupported is used when a calculated KPI is resolved without
	// a real evaluator wired in.
	ErrFormulaNotSupported = &errors.Error{
		Code: errors.ENotImplemented,
		Msg:  "formula evaluation is not supported",
	}

	// NotUniqueIDError is used when attempting to create a KPI config with an
	// ID that already exists.
	NotUniqueIDError = &errors.Error{
		Code: errors.EConflict,
		Msg:  "ID already exists",
	}
)

// ErrCorruptKPIConfig the config stored cannot be decoded.
func ErrCorruptKPIConfig(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "kpi config could not be unmarshalled",
		Err:  err,
		Op:   "kpi/unmarshalKPIConfig",
	}
}

// ErrUnprocessableKPIConfig the config cannot be encoded.
func ErrUnprocessableKPIConfig(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  "kpi config could not be marshalled",
		Err:  err,
		Op:   "kpi/marshalKPIConfig",
	}
}
