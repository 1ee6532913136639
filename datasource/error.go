package datasource

import (
	"fmt"

	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

var (
	// ErrDataSourceNotFound is used when the data source is not found.
	ErrDataSourceNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "data source not found",
	}

	// ErrDataSourceNameEmpty is used when a data source is created without a name.
	ErrDataSourceNameEmpty = &errors.Error{
		Code: errors.EEmptyValue,
		Msg:  "data source name is empty",
	}

	// NotUniqueIDError is used when attempting to create a data source with an
	// ID that already exists.
	NotUniqueIDError = &errors.Error{
		Code: errors.EConflict,
		Msg:  "ID already exists",
	}
)

// UnknownTypeError is used when the data source type is not recognized.
func UnknownTypeError(t string) *errors.Error {
	return &errors.Error{
		Code: errors.EInvalid,
		Msg:  fmt.Sprintf("unknown data source type %q", t),
	}
}

// InvalidStatusError is used when a status outside the connection state
// machine is supplied.
func InvalidStatusError(status string) *errors.Error {
	return &errors.Error{
		Code: errors.EInvalid,
		Msg:  fmt.Sprintf("unknown connection status %q", status),
	}
}

// InvalidConfigError wraps the collected configuration validation failures.
func InvalidConfigError(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInvalid,
		Msg:  "invalid data source configuration",
		Err:  err,
	}
}

// ErrCorruptDataSource the data source stored cannot be decoded.
func ErrCorruptDataSource(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "data source could not be unmarshalled",
		Err:  err,
		Op:   "datasource/unmarshalDataSource",
	}
}

// ErrUnprocessableDataSource the data source cannot be encoded.
func ErrUnprocessableDataSource(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  "data source could not be marshalled",
		Err:  err,
		Op:   "datasource/marshalDataSource",
	}
}
